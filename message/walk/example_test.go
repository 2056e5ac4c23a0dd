package walk_test

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/walk"
)

func ExampleAndProcess() {
	m, err := message.Parse(strings.NewReader(complexMsg))
	if err != nil {
		panic(err)
	}

	err = walk.AndProcess(func(part *message.Entity, parents []*message.Entity) error {
		mt, _ := part.GetMediaType()
		fmt.Printf("%s%s\n", strings.Repeat("  ", len(parents)), mt)
		return nil
	}, m)
	if err != nil {
		panic(err)
	}

	// Output:
	// multipart/mixed
	//   multipart/alternative
	//     text/html
	//     text/plain
	//   application/pdf
	//   application/image
}

func ExampleAndTransform() {
	m, err := message.Parse(strings.NewReader(complexMsg))
	if err != nil {
		panic(err)
	}

	out, err := walk.AndTransform(
		func(part *message.Entity, _ []*message.Entity) ([]*message.Entity, error) {
			if fn, _ := part.GetFilename(); fn != "" {
				return nil, walk.ErrSkip
			}
			return nil, walk.ErrCopy
		}, m,
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(out[0].Parts()))

	// Output: 1
}
