package timeline

import (
	"iter"
	"time"
)

// DefaultGroupThreshold is the largest gap between consecutive messages from
// the same author that still joins them into one block.
const DefaultGroupThreshold = 5 * time.Minute

// Block is a run of consecutive messages from one author, close enough in
// time to render under a single author header.
type Block struct {
	Author         string
	FirstTimestamp time.Time
	MessageIDs     []string
	ShowHeader     bool
}

// Grouper folds an ordered message slice into blocks. The zero value uses
// DefaultGroupThreshold.
type Grouper struct {
	Threshold time.Duration
}

// NewGrouper returns a grouper with the given threshold; non-positive values
// fall back to DefaultGroupThreshold.
func NewGrouper(threshold time.Duration) Grouper {
	if threshold <= 0 {
		threshold = DefaultGroupThreshold
	}
	return Grouper{Threshold: threshold}
}

func (g Grouper) threshold() time.Duration {
	if g.Threshold <= 0 {
		return DefaultGroupThreshold
	}
	return g.Threshold
}

// Blocks lazily yields the blocks for msgs in one forward pass. The gap test
// compares each message against the last message already in the open block,
// inclusive: a gap of exactly the threshold still groups. A different author,
// a gap over the threshold, or an out-of-order timestamp starts a new block.
// The sequence is restartable and carries no state between calls.
func (g Grouper) Blocks(msgs []Message) iter.Seq[Block] {
	threshold := g.threshold()
	return func(yield func(Block) bool) {
		var (
			open     Block
			last     time.Time
			hasBlock bool
		)
		for _, msg := range msgs {
			if hasBlock {
				gap := msg.CreatedAt.Sub(last)
				if msg.Author == open.Author && gap >= 0 && gap <= threshold {
					open.MessageIDs = append(open.MessageIDs, msg.ID)
					last = msg.CreatedAt
					continue
				}
				if !yield(open) {
					return
				}
			}
			open = Block{
				Author:         msg.Author,
				FirstTimestamp: msg.CreatedAt,
				MessageIDs:     []string{msg.ID},
				ShowHeader:     true,
			}
			last = msg.CreatedAt
			hasBlock = true
		}
		if hasBlock {
			yield(open)
		}
	}
}

// Group collects Blocks into a slice. The blocks concatenate to exactly the
// input messages, in order.
func (g Grouper) Group(msgs []Message) []Block {
	var out []Block
	for b := range g.Blocks(msgs) {
		out = append(out, b)
	}
	return out
}
