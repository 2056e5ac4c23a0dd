package transfer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimemessage/message/transfer"
)

const b64Zeros = `MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAw
MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAw
MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAw
MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDA=`

func TestEncodeBase64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", transfer.EncodeBase64(nil))
	assert.Equal(t, "SEVMTE8h", transfer.EncodeBase64([]byte("HELLO!")))
	assert.Equal(t, crlfLines(b64Zeros), transfer.EncodeBase64([]byte(strings.Repeat("0", 200))))

	// exactly one full line gets no line break
	assert.Equal(t, strings.Repeat("MDAw", 19), transfer.EncodeBase64([]byte(strings.Repeat("0", 57))))
}

func TestDecodeBase64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte(strings.Repeat("0", 200)), transfer.DecodeBase64(crlfLines(b64Zeros)))
	assert.Equal(t, []byte("HELLO!"), transfer.DecodeBase64("SEVM\r\n TE8h\t"))
	assert.Equal(t, []byte("HELLO"), transfer.DecodeBase64("SEVMTE8="))
	assert.Equal(t, []byte("HELLO"), transfer.DecodeBase64("SEVMTE8"))
	assert.Equal(t, []byte("HELLO"), transfer.DecodeBase64("SE*VM!TE8=="))
	assert.Equal(t, []byte{0xfb, 0xff}, transfer.DecodeBase64("-_8"))
	assert.Equal(t, []byte("HELLO!"), transfer.DecodeBase64("SEVMTE8hQ"))
	assert.Empty(t, transfer.DecodeBase64(""))
}
