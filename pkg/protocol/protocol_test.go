package protocol_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/dom"
	"github.com/toastify-dev/toastify/pkg/protocol"
	"github.com/toastify-dev/toastify/pkg/toast"
)

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want protocol.Type
	}{
		{"show", `{"type":"show","ref":"r1","options":{"toastMsg":"hi"}}`, protocol.TypeShow},
		{"show without options", `{"type":"show"}`, protocol.TypeShow},
		{"update", `{"type":"update","id":"toast-1","options":{"theme":"dark"}}`, protocol.TypeUpdate},
		{"remove", `{"type":"remove","id":"toast-1"}`, protocol.TypeRemove},
		{"click", `{"type":"event","id":"toast-1","event":"click"}`, protocol.TypeEvent},
		{"transitionend", `{"type":"event","id":"toast-1","event":"transitionend"}`, protocol.TypeEvent},
		{"hidden", `{"type":"visibility","state":"hidden"}`, protocol.TypeVisibility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := protocol.Decode([]byte(tt.in))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if m.Type != tt.want {
				t.Errorf("Type = %q, want %q", m.Type, tt.want)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code string
	}{
		{"not json", `{`, "T200"},
		{"unknown field", `{"type":"show","colour":"red"}`, "T200"},
		{"trailing data", `{"type":"show"}{"type":"show"}`, "T200"},
		{"unknown type", `{"type":"explode"}`, "T201"},
		{"server type", `{"type":"render","html":""}`, "T201"},
		{"update without id", `{"type":"update","options":{}}`, "T200"},
		{"remove without id", `{"type":"remove"}`, "T200"},
		{"event without id", `{"type":"event","event":"click"}`, "T200"},
		{"bad event", `{"type":"event","id":"x","event":"dblclick"}`, "T200"},
		{"bad state", `{"type":"visibility","state":"prerender"}`, "T200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := protocol.Decode([]byte(tt.in))
			if !errors.HasCode(err, tt.code) {
				t.Errorf("Decode() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDecodeTooLarge(t *testing.T) {
	big := `{"type":"show","options":{"toastMsg":"` + strings.Repeat("a", protocol.MaxMessageSize) + `"}}`
	if _, err := protocol.Decode([]byte(big)); !errors.HasCode(err, "T200") {
		t.Errorf("Decode() error = %v, want T200", err)
	}
}

func TestToastOptions(t *testing.T) {
	m, err := protocol.Decode([]byte(`{"type":"show","options":{"autoCloseTime":2500,"position":"top-left"}}`))
	if err != nil {
		t.Fatal(err)
	}
	opts, err := m.ToastOptions()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 {
		t.Fatalf("opts = %v", opts)
	}
	if opts[0].Value() != toast.TopLeft || opts[1].Value() != 2500*time.Millisecond {
		t.Errorf("opts = %v", opts)
	}

	m, _ = protocol.Decode([]byte(`{"type":"show","options":{"onClose":"alert(1)"}}`))
	if _, err := m.ToastOptions(); !errors.HasCode(err, "T006") {
		t.Errorf("onClose error = %v, want T006", err)
	}
}

func TestVisibility(t *testing.T) {
	m, _ := protocol.Decode([]byte(`{"type":"visibility","state":"visible"}`))
	if m.Visibility() != dom.Visible {
		t.Errorf("Visibility() = %q", m.Visibility())
	}
}

func TestEncodeServerMessages(t *testing.T) {
	data, err := protocol.Encode(protocol.Render(3, `<div class="toast"></div>`))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["type"] != "render" || got["seq"] != float64(3) || got["html"] != `<div class="toast"></div>` {
		t.Errorf("render = %s", data)
	}
	if _, ok := got["id"]; ok {
		t.Errorf("empty fields should be omitted: %s", data)
	}

	shown := protocol.Shown("r1", "toast-1")
	if shown.Type != protocol.TypeShown || shown.Ref != "r1" || shown.ID != "toast-1" {
		t.Errorf("Shown() = %+v", shown)
	}
}

func TestErrorMessage(t *testing.T) {
	m := protocol.Error(errors.New("T202").WithField("toast-9"))
	if m.Type != protocol.TypeError || m.Code != "T202" {
		t.Errorf("Error() = %+v", m)
	}
	if !strings.Contains(m.Error, "toast-9") {
		t.Errorf("Error text = %q", m.Error)
	}

	m = protocol.Error(stdError("boom"))
	if m.Code != "T200" {
		t.Errorf("plain error code = %q, want T200", m.Code)
	}
}

type stdError string

func (e stdError) Error() string { return string(e) }
