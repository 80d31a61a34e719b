package protocol

import (
	"encoding/json"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// Type identifies a message.
type Type string

// Client to server.
const (
	TypeShow       Type = "show"
	TypeUpdate     Type = "update"
	TypeRemove     Type = "remove"
	TypeEvent      Type = "event"
	TypeVisibility Type = "visibility"
)

// Server to client.
const (
	TypeShown  Type = "shown"
	TypeRender Type = "render"
	TypeError  Type = "error"
)

// Message is the single envelope for every message in either direction.
// Which fields are set depends on Type.
type Message struct {
	Type Type `json:"type"`

	// Ref correlates a show request with its shown reply.
	Ref string `json:"ref,omitempty"`

	// ID is the toast id for update, remove and shown, and the target
	// element id for event.
	ID string `json:"id,omitempty"`

	// Options holds the raw option object for show and update.
	Options json.RawMessage `json:"options,omitempty"`

	// Event is the DOM event type for event messages.
	Event string `json:"event,omitempty"`

	// State is "visible" or "hidden" for visibility messages.
	State string `json:"state,omitempty"`

	Seq  uint64 `json:"seq,omitempty"`
	HTML string `json:"html,omitempty"`

	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ToastOptions decodes Options.
func (m *Message) ToastOptions() ([]toast.Option, error) {
	return toast.ParseOptionsJSON(m.Options)
}

// Visibility returns State as a document visibility.
func (m *Message) Visibility() dom.Visibility {
	return dom.Visibility(m.State)
}

// FromClient reports whether the type is one a client may send.
func (t Type) FromClient() bool {
	switch t {
	case TypeShow, TypeUpdate, TypeRemove, TypeEvent, TypeVisibility:
		return true
	}
	return false
}

// Shown builds the reply to a show request.
func Shown(ref, id string) *Message {
	return &Message{Type: TypeShown, Ref: ref, ID: id}
}

// Render builds a render message.
func Render(seq uint64, html string) *Message {
	return &Message{Type: TypeRender, Seq: seq, HTML: html}
}

// Error builds an error message from err. Coded errors keep their code;
// anything else is reported as T200.
func Error(err error) *Message {
	te := errors.FromError(err, "T200")
	msg := te.Message
	if te.Field != "" {
		msg += ": " + te.Field
	}
	return &Message{Type: TypeError, Code: te.Code, Error: msg}
}
