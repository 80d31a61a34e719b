package toast_test

import (
	"testing"
	"time"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
	"github.com/toastify-dev/toastify/pkg/toasttest"
)

func TestParseOptionsJSON(t *testing.T) {
	opts, err := toast.ParseOptionsJSON([]byte(`{
		"theme": "dark",
		"type": "warning",
		"toastMsg": "Low battery",
		"position": "bottom-left",
		"autoCloseTime": 2500,
		"canClose": false,
		"showProgress": true,
		"pauseOnHover": false,
		"pauseOnFocusLoss": true
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []toast.Key{
		toast.KeyPosition, toast.KeyMessage, toast.KeyAutoClose, toast.KeyCanClose,
		toast.KeyShowProgress, toast.KeyPauseOnHover, toast.KeyPauseOnFocusLoss,
		toast.KeyType, toast.KeyTheme,
	}
	if len(opts) != len(wantOrder) {
		t.Fatalf("got %d options, want %d", len(opts), len(wantOrder))
	}
	for i, k := range wantOrder {
		if opts[i].Key() != k {
			t.Errorf("option %d key = %q, want %q", i, opts[i].Key(), k)
		}
	}
	if opts[2].Value() != 2500*time.Millisecond {
		t.Errorf("autoCloseTime = %v", opts[2].Value())
	}
	if opts[0].Value() != toast.BottomLeft {
		t.Errorf("position = %v", opts[0].Value())
	}
}

func TestParseOptionsAutoCloseFalse(t *testing.T) {
	opts, err := toast.ParseOptions(map[string]any{"autoCloseTime": false})
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 1 || opts[0].Value() != time.Duration(0) {
		t.Errorf("opts = %v", opts)
	}

	opts, err = toast.ParseOptions(map[string]any{"autoCloseTime": 1500})
	if err != nil {
		t.Fatal(err)
	}
	if opts[0].Value() != 1500*time.Millisecond {
		t.Errorf("autoCloseTime = %v", opts[0].Value())
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		code string
	}{
		{"unknown key", map[string]any{"duration": 10}, "T001"},
		{"bad position", map[string]any{"position": "middle"}, "T002"},
		{"bad type", map[string]any{"type": "fatal"}, "T003"},
		{"bad theme", map[string]any{"theme": "sepia"}, "T004"},
		{"bool as string", map[string]any{"canClose": "yes"}, "T005"},
		{"message not string", map[string]any{"toastMsg": 42}, "T005"},
		{"duration not number", map[string]any{"autoCloseTime": "soon"}, "T005"},
		{"duration out of range", map[string]any{"autoCloseTime": 1e13}, "T005"},
		{"onClose", map[string]any{"onClose": "alert()"}, "T006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toast.ParseOptions(tt.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseOptionsAutoCloseRange(t *testing.T) {
	if _, err := toast.ParseOptionsJSON([]byte(`{"autoCloseTime": 1e13}`)); !errors.HasCode(err, "T005") {
		t.Errorf("1e13: error = %v, want T005", err)
	}

	opts, err := toast.ParseOptionsJSON([]byte(`{"autoCloseTime": 9e12}`))
	if err != nil {
		t.Fatalf("9e12: %v", err)
	}
	if d := opts[0].Value().(time.Duration); d <= 0 {
		t.Errorf("9e12 ms = %v, want positive", d)
	}

	opts, err = toast.ParseOptions(map[string]any{"autoCloseTime": -1e13})
	if err != nil {
		t.Fatalf("-1e13: %v", err)
	}
	if d := opts[0].Value().(time.Duration); d >= 0 {
		t.Errorf("-1e13 ms = %v, want negative", d)
	}
}

func TestParseOptionsJSONMalformed(t *testing.T) {
	if _, err := toast.ParseOptionsJSON([]byte(`{"position":`)); !errors.HasCode(err, "T007") {
		t.Errorf("error = %v, want T007", err)
	}

	opts, err := toast.ParseOptionsJSON([]byte("  "))
	if err != nil || opts != nil {
		t.Errorf("empty input = %v, %v", opts, err)
	}
}

func TestParsedOptionsApply(t *testing.T) {
	opts, err := toast.ParseOptionsJSON([]byte(`{"type":"info","toastMsg":"Synced","position":"top-center"}`))
	if err != nil {
		t.Fatal(err)
	}

	h := toasttest.New(t)
	tst := h.Show(opts...)
	if tst.Type() != toast.TypeInfo || tst.Message() != "Synced" || tst.Position() != toast.TopCenter {
		t.Errorf("toast = %q %q %q", tst.Type(), tst.Message(), tst.Position())
	}
}

func TestParseEnums(t *testing.T) {
	for _, p := range toast.Positions() {
		got, err := toast.ParsePosition(" " + string(p) + " ")
		if err != nil || got != p {
			t.Errorf("ParsePosition(%q) = %q, %v", p, got, err)
		}
	}
	for _, k := range toast.Types() {
		got, err := toast.ParseType(string(k))
		if err != nil || got != k {
			t.Errorf("ParseType(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := toast.ParseTheme("dark"); err != nil {
		t.Error(err)
	}
	if toast.Position("left").Valid() {
		t.Error("left should be invalid")
	}
}

func TestOptionString(t *testing.T) {
	if got := toast.WithOnClose(func() {}).String(); got != "onClose=func" {
		t.Errorf("String() = %q", got)
	}
	if got := toast.WithType(toast.TypeError).String(); got != "type=error" {
		t.Errorf("String() = %q", got)
	}
}
