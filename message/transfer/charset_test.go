package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimemessage/message/transfer"
)

func TestIsUTF8(t *testing.T) {
	t.Parallel()

	for _, cs := range []string{"utf-8", "UTF-8", "utf8", "Utf-8", "U-T-F-8"} {
		assert.True(t, transfer.IsUTF8(cs), cs)
	}

	for _, cs := range []string{"", "latin1", "utf-16", "us-ascii"} {
		assert.False(t, transfer.IsUTF8(cs), cs)
	}
}

func TestUTF8(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{'H', 0xc3, 0xa9}, transfer.EncodeUTF8("Hé"))

	s, valid := transfer.DecodeUTF8([]byte{'H', 0xc3, 0xa9})
	assert.True(t, valid)
	assert.Equal(t, "Hé", s)

	s, valid = transfer.DecodeUTF8([]byte{'H', 0xe9})
	assert.False(t, valid)
	assert.Equal(t, "H\xe9", s)
}

func TestEncodeCharset(t *testing.T) {
	t.Parallel()

	b, err := transfer.EncodeCharset("ISO-8859-1", "café")
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), b)

	b, err = transfer.EncodeCharset("utf-8", "café")
	require.NoError(t, err)
	assert.Equal(t, []byte("café"), b)

	_, err = transfer.EncodeCharset("x-no-such-charset", "café")
	assert.Error(t, err)
}

func TestDecodeCharset(t *testing.T) {
	t.Parallel()

	s, err := transfer.DecodeCharset("iso-8859-1", []byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "café", s)

	s, err = transfer.DecodeCharset("UTF8", []byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", s)

	_, err = transfer.DecodeCharset("x-no-such-charset", nil)
	assert.Error(t, err)
}
