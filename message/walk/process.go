package walk

import "github.com/zostay/go-mimemessage/message"

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part to process and the ancestry of the part. If
// len(parents) is zero, then this is the top-level part (i.e., the top-level
// part that AndProcess() was called upon, which might not be the root message).
// The parents slice is only valid for the duration of the call.
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Entity, parents []*message.Entity) error

// AndProcess will walk the message parts tree of a message (or a part of a
// message) and call the given Processor function for each part found. It will
// terminate once all parts have been processed and return nil. If the Processor
// function returns an error, it will terminate early and return that error.
func AndProcess(
	processor Processor,
	msg *message.Entity,
) error {
	parents := make([]*message.Entity, 0, 10)
	return andProcess(processor, msg, parents)
}

func andProcess(
	processor Processor,
	part *message.Entity,
	parents []*message.Entity,
) error {
	err := processor(part, parents)
	if err != nil {
		return err
	}

	if subParts := part.Parts(); len(subParts) > 0 {
		parents = append(parents, part)
		for _, subPart := range subParts {
			if subPart == nil {
				continue
			}

			err := andProcess(processor, subPart, parents)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// AndProcessLeaves works just like AndProcess, but only calls the Processor
// for parts that do not have a Composite body.
func AndProcessLeaves(
	processor Processor,
	msg *message.Entity,
) error {
	return AndProcess(func(part *message.Entity, parents []*message.Entity) error {
		if _, isComposite := part.Body().(message.Composite); isComposite {
			return nil
		}
		return processor(part, parents)
	}, msg)
}

// AndProcessMultipart works just like AndProcess, but only calls the
// Processor for parts with a Composite body.
func AndProcessMultipart(
	processor Processor,
	msg *message.Entity,
) error {
	return AndProcess(func(part *message.Entity, parents []*message.Entity) error {
		if _, isComposite := part.Body().(message.Composite); !isComposite {
			return nil
		}
		return processor(part, parents)
	}, msg)
}
