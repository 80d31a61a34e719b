package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// MaxMessageSize bounds a single client message.
const MaxMessageSize = 64 << 10

// Decode parses and validates a client message.
func Decode(data []byte) (*Message, error) {
	if len(data) > MaxMessageSize {
		return nil, errors.New("T200").
			WithDetailf("message is %d bytes, the limit is %d", len(data), MaxMessageSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var m Message
	if err := dec.Decode(&m); err != nil {
		return nil, errors.New("T200").Wrap(err)
	}
	if dec.More() {
		return nil, errors.New("T200").WithDetail("trailing data after message")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Encode serializes a message.
func Encode(m *Message) ([]byte, error) {
	return json.Marshal(m)
}

func (m *Message) validate() error {
	if !m.Type.FromClient() {
		return errors.New("T201").WithField(string(m.Type))
	}

	switch m.Type {
	case TypeUpdate, TypeRemove:
		if m.ID == "" {
			return missing(m.Type, "id")
		}
	case TypeEvent:
		if m.ID == "" {
			return missing(m.Type, "id")
		}
		switch m.Event {
		case toast.EventClick, toast.EventPointerEnter, toast.EventPointerLeave, toast.EventTransitionEnd:
		default:
			return errors.New("T200").
				WithField("event").
				WithDetailf("unsupported event %q", m.Event)
		}
	case TypeVisibility:
		switch dom.Visibility(m.State) {
		case dom.Visible, dom.Hidden:
		default:
			return errors.New("T200").
				WithField("state").
				WithDetailf("state must be visible or hidden, got %q", m.State)
		}
	}
	return nil
}

func missing(t Type, field string) error {
	return errors.New("T200").
		WithField(field).
		WithDetailf("%s messages require %s", t, field)
}
