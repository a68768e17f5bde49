// Package message defines the inbox entries the simulation emits. A message's
// Event is a closed sum type: each kind carries exactly the payload it needs.
package message

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sevenx777-dev/sevenxfoot/internal/league"
)

// Kind tags a message variant.
type Kind string

const (
	KindFinance                  Kind = "finance"
	KindContract                 Kind = "contract"
	KindResult                   Kind = "result"
	KindEvolution                Kind = "evolution"
	KindAward                    Kind = "award"
	KindTransferIncoming         Kind = "transfer_offer_incoming"
	KindTransferOutgoingAccepted Kind = "transfer_offer_outgoing_accepted"
	KindTransferOutgoingRejected Kind = "transfer_offer_outgoing_rejected"
	KindManagerOffer             Kind = "manager_offer"
)

// Event is the variant part of a message. Only types in this package implement it.
type Event interface {
	Kind() Kind
	sealed()
}

// Notice is a plain informational event with no payload
// (finance, contract, result, evolution or award).
type Notice struct {
	kind Kind
}

func (n Notice) Kind() Kind { return n.kind }
func (Notice) sealed()      {}

// Plain notices.
var (
	Finance   = Notice{kind: KindFinance}
	Contract  = Notice{kind: KindContract}
	Result    = Notice{kind: KindResult}
	Evolution = Notice{kind: KindEvolution}
	Award     = Notice{kind: KindAward}
)

// TransferIncoming announces an AI club's bid on a listed player.
type TransferIncoming struct {
	Offer league.TransferOffer `json:"offer"`
}

func (TransferIncoming) Kind() Kind { return KindTransferIncoming }
func (TransferIncoming) sealed()    {}

// TransferAccepted announces that an outgoing bid went through.
type TransferAccepted struct {
	Offer league.TransferOffer `json:"offer"`
}

func (TransferAccepted) Kind() Kind { return KindTransferOutgoingAccepted }
func (TransferAccepted) sealed()    {}

// TransferRejected announces that an outgoing bid failed or lapsed.
type TransferRejected struct {
	Offer     league.TransferOffer `json:"offer"`
	Cancelled bool                 `json:"cancelled"` // Target left the market
}

func (TransferRejected) Kind() Kind { return KindTransferOutgoingRejected }
func (TransferRejected) sealed()    {}

// ManagerOffers announces end-of-season job offers.
type ManagerOffers struct {
	Offers []league.ManagerOffer `json:"offers"`
}

func (ManagerOffers) Kind() Kind { return KindManagerOffer }
func (ManagerOffers) sealed()    {}

// Message is one inbox entry. Read is the only field mutated after creation.
type Message struct {
	ID        uuid.UUID
	Week      int
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
	Event     Event
}

// New creates an unread message.
func New(week int, ev Event, title, body string, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		Week:      week,
		Title:     title,
		Body:      body,
		CreatedAt: at,
		Event:     ev,
	}
}

// Kind returns the message's variant tag.
func (m Message) Kind() Kind {
	if m.Event == nil {
		return ""
	}
	return m.Event.Kind()
}

type wireMessage struct {
	ID        uuid.UUID       `json:"id"`
	Week      int             `json:"week"`
	Kind      Kind            `json:"type"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON flattens the event into a type tag plus optional payload.
func (m Message) MarshalJSON() ([]byte, error) {
	payload, err := EncodePayload(m.Event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireMessage{
		ID:        m.ID,
		Week:      m.Week,
		Kind:      m.Kind(),
		Title:     m.Title,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
		Payload:   payload,
	})
}

// UnmarshalJSON rebuilds the event variant from the type tag.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	ev, err := DecodeEvent(w.Kind, w.Payload)
	if err != nil {
		return err
	}
	*m = Message{
		ID:        w.ID,
		Week:      w.Week,
		Title:     w.Title,
		Body:      w.Body,
		Read:      w.Read,
		CreatedAt: w.CreatedAt,
		Event:     ev,
	}
	return nil
}

// EncodePayload returns the JSON payload of an event, nil for plain notices.
func EncodePayload(ev Event) (json.RawMessage, error) {
	switch ev.(type) {
	case nil, Notice:
		return nil, nil
	}
	return json.Marshal(ev)
}

// DecodeEvent rebuilds an event from its tag and payload.
func DecodeEvent(kind Kind, payload []byte) (Event, error) {
	switch kind {
	case KindFinance, KindContract, KindResult, KindEvolution, KindAward:
		return Notice{kind: kind}, nil
	case KindTransferIncoming:
		var ev TransferIncoming
		if err := unmarshalPayload(kind, payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindTransferOutgoingAccepted:
		var ev TransferAccepted
		if err := unmarshalPayload(kind, payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindTransferOutgoingRejected:
		var ev TransferRejected
		if err := unmarshalPayload(kind, payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case KindManagerOffer:
		var ev ManagerOffers
		if err := unmarshalPayload(kind, payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, fmt.Errorf("unknown message kind %q", kind)
}

func unmarshalPayload(kind Kind, payload []byte, into any) error {
	if len(payload) == 0 {
		return fmt.Errorf("message kind %q requires a payload", kind)
	}
	if err := json.Unmarshal(payload, into); err != nil {
		return fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return nil
}
