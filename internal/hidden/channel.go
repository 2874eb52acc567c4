// Package hidden keeps the text the grammar never sees (whitespace,
// comments, preprocessor lines and copied punctuation) so the emitter can put
// it back around the tokens it regenerates.
package hidden

import (
	"errors"
	"fmt"
)

var ErrNotIncreasing = errors.New("hidden: extraction sequence must be strictly increasing")

// Every item is keyed by the sequence number of the significant token that
// follows it. Items sharing a key are kept in recording order.
type Channel struct {
	items  map[int][]string
	count  int
	maxKey int

	low       int
	extracted bool
}

func New() *Channel {
	return &Channel{items: make(map[int][]string)}
}

func (ch *Channel) Record(text string, seq int) {
	ch.items[seq] = append(ch.items[seq], text)
	ch.count++
	if seq > ch.maxKey {
		ch.maxKey = seq
	}
}

// Returns, in document order, every item keyed in [low, seq), removes them
// and moves the low-water mark to seq. Calls within one emission pass must
// use strictly increasing sequence numbers.
func (ch *Channel) ExtractBefore(seq int) ([]string, error) {
	if ch.extracted && seq <= ch.low {
		return nil, fmt.Errorf("%w: %d after %d", ErrNotIncreasing, seq, ch.low)
	}
	ch.extracted = true

	var out []string
	for key := ch.low; key < seq && key <= ch.maxKey; key++ {
		list, ok := ch.items[key]
		if !ok {
			continue
		}
		out = append(out, list...)
		ch.count -= len(list)
		delete(ch.items, key)
	}
	ch.low = seq
	return out, nil
}

func (ch *Channel) MaxKey() int { return ch.maxKey }

// Number of items not extracted yet
func (ch *Channel) Len() int { return ch.count }

// Low-water mark: every key below it has already been extracted.
func (ch *Channel) Low() int { return ch.low }
