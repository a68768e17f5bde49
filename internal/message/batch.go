package message

import "time"

// Batch collects the messages of one simulation step or user action. All
// entries share the week and timestamp the batch was opened with.
type Batch struct {
	Week     int
	At       time.Time
	Messages []Message
}

// NewBatch opens an empty batch.
func NewBatch(week int, at time.Time) *Batch {
	return &Batch{Week: week, At: at}
}

// Add appends a message.
func (b *Batch) Add(ev Event, title, body string) {
	b.Messages = append(b.Messages, New(b.Week, ev, title, body, b.At))
}

// Count returns how many messages of a kind the batch holds.
func (b *Batch) Count(kind Kind) int {
	n := 0
	for _, m := range b.Messages {
		if m.Kind() == kind {
			n++
		}
	}
	return n
}
