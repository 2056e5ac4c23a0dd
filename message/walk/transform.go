package walk

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mimemessage/message"
)

var (
	// ErrSkip may be returned by a Transformer callback to signal that the part
	// should be skipped entirely.
	ErrSkip = errors.New("skip part")

	// ErrCopy may be returned by a Transformer callback to signal that the part
	// should be copied as is.
	ErrCopy = errors.New("clone part")

	// ErrNilNil is returned by AndTransform when a Transformer callback returns
	// no parts and provides no error.
	ErrNilNil = errors.New("no parts and no error")

	// ErrNilPart is returned by AndTransform when a Transformer callback
	// returns a nil entity among its parts.
	ErrNilPart = errors.New("nil part")
)

// BadTransformationError is used when transformation needs to fail with an
// error.
type BadTransformationError struct {
	Cause   error
	Message string
}

// Error returns the error message describing the bad transformation.
func (b *BadTransformationError) Error() string {
	return fmt.Sprintf("%s: %v", b.Message, b.Cause)
}

// Unwrap returns the error that caused the bad transformation.
func (b *BadTransformationError) Unwrap() error {
	return b.Cause
}

// Transformer is a callback that can be passed to the AndTransform() function
// to transform a message and its sub-parts into a new message.
//
// The Transformer is given the part to transform and the ancestry of the part.
// If len(parents) is zero, then this is the top-level part. The parents are the
// original parents of the given original part, not the transformed parents.
//
// The Transformer returns the entities that replace the part, ErrSkip to drop
// it or ErrCopy to keep a copy of it. Any other error makes AndTransform()
// fail with that error. Returning nil with no error is a mistake and fails
// with ErrNilNil. A nil entity among the parts fails with ErrNilPart.
type Transformer func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error)

// AndTransform will perform a transformation on the given message and return
// the new entities that replace it. The original message is not modified. The
// transformation is performed in depth-first order with parents transformed
// before their children.
//
// When the original part is multipart, its sub-parts are transformed as well.
// Each replacement entity that has an empty Composite body receives the
// transformed sub-parts. If every sub-part is skipped, such a replacement is
// dropped too, so no empty multipart entities are created. A replacement with
// any other body is kept as returned and the sub-parts are not attached to it.
func AndTransform(
	transformer Transformer,
	msg *message.Entity,
) ([]*message.Entity, error) {
	parents := make([]*message.Entity, 0, 10)
	return andTransform(transformer, msg, parents)
}

func callTransformer(
	transformer Transformer,
	part *message.Entity,
	parents []*message.Entity,
) ([]*message.Entity, error) {
	out, err := transformer(part, parents)
	switch {
	case errors.Is(err, ErrSkip):
		return []*message.Entity{}, nil
	case errors.Is(err, ErrCopy):
		return []*message.Entity{TransCopyPart(part)}, nil
	case err != nil && out != nil:
		return nil, &BadTransformationError{err, "Transformer incorrectly returned error and parts"}
	case err != nil:
		return nil, err
	case out == nil:
		return nil, &BadTransformationError{ErrNilNil, "Transformer error"}
	}

	for i, o := range out {
		if o == nil {
			return nil, &BadTransformationError{ErrNilPart, fmt.Sprintf("Transformer returned nil part %d", i)}
		}
	}

	return out, nil
}

func andTransform(
	transformer Transformer,
	part *message.Entity,
	parents []*message.Entity,
) ([]*message.Entity, error) {
	out, err := callTransformer(transformer, part, parents)
	if err != nil {
		return nil, err
	}

	if _, isComposite := part.Body().(message.Composite); !isComposite || len(out) == 0 {
		return out, nil
	}

	subParents := append(parents[:len(parents):len(parents)], part)
	var children []*message.Entity
	for _, subPart := range part.Parts() {
		if subPart == nil {
			continue
		}

		tsubs, err := andTransform(transformer, subPart, subParents)
		if err != nil {
			return nil, err
		}
		children = append(children, tsubs...)
	}

	result := make([]*message.Entity, 0, len(out))
	attached := false
	for _, o := range out {
		if c, isComposite := o.Body().(message.Composite); isComposite && len(c) == 0 {
			if len(children) == 0 {
				continue
			}

			kids := children
			if attached {
				kids = cloneAll(children)
			}
			if err := o.SetParts(kids...); err != nil {
				return nil, err
			}
			attached = true
		}
		result = append(result, o)
	}

	return result, nil
}

func cloneAll(parts []*message.Entity) []*message.Entity {
	cps := make([]*message.Entity, len(parts))
	for i, p := range parts {
		cps[i] = p.Clone()
	}
	return cps
}

// TransCopyPart provides a handy utility for copying an original part through
// to make a transformed part with no changes. This is intended for use with
// defining a Transformer, so this doesn't exactly copy a part.
//
// A non-multipart part is copied whole. A multipart part results in a new
// entity with a copy of the original header and an empty Composite body, which
// AndTransform() then fills with the transformed sub-parts.
func TransCopyPart(orig *message.Entity) *message.Entity {
	cp := orig.Clone()
	if _, isComposite := cp.Body().(message.Composite); isComposite {
		_ = cp.SetParts()
	}
	return cp
}
