package toast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/toastify-dev/toastify/internal/errors"
)

// Key names a toast option. The set is closed.
type Key string

const (
	KeyPosition         Key = "position"
	KeyMessage          Key = "toastMsg"
	KeyAutoClose        Key = "autoCloseTime"
	KeyOnClose          Key = "onClose"
	KeyCanClose         Key = "canClose"
	KeyShowProgress     Key = "showProgress"
	KeyPauseOnHover     Key = "pauseOnHover"
	KeyPauseOnFocusLoss Key = "pauseOnFocusLoss"
	KeyType             Key = "type"
	KeyTheme            Key = "theme"
)

// Keys returns every option key in the order New applies them.
func Keys() []Key {
	return []Key{
		KeyPosition,
		KeyMessage,
		KeyAutoClose,
		KeyOnClose,
		KeyCanClose,
		KeyShowProgress,
		KeyPauseOnHover,
		KeyPauseOnFocusLoss,
		KeyType,
		KeyTheme,
	}
}

// DefaultMessage is the message shown when none is given.
const DefaultMessage = "Toastify"

// DefaultAutoClose is the default auto-close duration.
const DefaultAutoClose = 5 * time.Second

// Option is one option key with its value. Build options with the With
// functions; the zero Option is ignored.
type Option struct {
	key   Key
	value any
}

// Key returns the option's key.
func (o Option) Key() Key { return o.key }

// Value returns the option's value.
func (o Option) Value() any { return o.value }

// String returns a short description for logs.
func (o Option) String() string {
	if o.key == KeyOnClose {
		return string(o.key) + "=func"
	}
	return fmt.Sprintf("%s=%v", o.key, o.value)
}

// WithPosition sets the container the toast is placed in.
func WithPosition(p Position) Option { return Option{KeyPosition, p} }

// WithMessage sets the text content.
func WithMessage(msg string) Option { return Option{KeyMessage, msg} }

// WithAutoClose sets the auto-close duration. Zero disables auto-close.
func WithAutoClose(d time.Duration) Option { return Option{KeyAutoClose, d} }

// WithOnClose sets the callback invoked when removal begins.
func WithOnClose(fn func()) Option { return Option{KeyOnClose, fn} }

// WithCanClose controls whether clicking the toast removes it.
func WithCanClose(on bool) Option { return Option{KeyCanClose, on} }

// WithShowProgress controls the countdown indicator.
func WithShowProgress(on bool) Option { return Option{KeyShowProgress, on} }

// WithPauseOnHover controls whether the countdown pauses under the pointer.
func WithPauseOnHover(on bool) Option { return Option{KeyPauseOnHover, on} }

// WithPauseOnFocusLoss controls whether time spent hidden is ignored.
func WithPauseOnFocusLoss(on bool) Option { return Option{KeyPauseOnFocusLoss, on} }

// WithType sets the icon and colour scheme.
func WithType(k Type) Option { return Option{KeyType, k} }

// WithTheme sets the light or dark variant.
func WithTheme(th Theme) Option { return Option{KeyTheme, th} }

// Defaults returns the built-in option values in application order.
func Defaults() []Option {
	return []Option{
		WithPosition(TopRight),
		WithMessage(DefaultMessage),
		WithAutoClose(DefaultAutoClose),
		WithOnClose(nil),
		WithCanClose(true),
		WithShowProgress(true),
		WithPauseOnHover(true),
		WithPauseOnFocusLoss(true),
		WithType(TypeDefault),
		WithTheme(ThemeLight),
	}
}

// setters is the dispatch table from option key to property behaviour.
var setters = map[Key]func(t *Toast, v any){
	KeyPosition:         func(t *Toast, v any) { t.setPosition(v.(Position)) },
	KeyMessage:          func(t *Toast, v any) { t.setMessage(v.(string)) },
	KeyAutoClose:        func(t *Toast, v any) { t.setAutoClose(v.(time.Duration)) },
	KeyOnClose:          func(t *Toast, v any) { t.setOnClose(v.(func())) },
	KeyCanClose:         func(t *Toast, v any) { t.setCanClose(v.(bool)) },
	KeyShowProgress:     func(t *Toast, v any) { t.setShowProgress(v.(bool)) },
	KeyPauseOnHover:     func(t *Toast, v any) { t.setPauseOnHover(v.(bool)) },
	KeyPauseOnFocusLoss: func(t *Toast, v any) { t.setPauseOnFocusLoss(v.(bool)) },
	KeyType:             func(t *Toast, v any) { t.setType(v.(Type)) },
	KeyTheme:            func(t *Toast, v any) { t.setTheme(v.(Theme)) },
}

// merge layers each option list over the previous ones and returns the
// result in application order.
func merge(layers ...[]Option) []Option {
	byKey := make(map[Key]Option)
	for _, layer := range layers {
		for _, o := range layer {
			if o.key == "" {
				continue
			}
			byKey[o.key] = o
		}
	}
	out := make([]Option, 0, len(byKey))
	for _, k := range Keys() {
		if o, ok := byKey[k]; ok {
			out = append(out, o)
		}
	}
	return out
}

// ParseOptions builds options from an untyped map such as decoded JSON.
// The result is in application order. autoCloseTime is in milliseconds and
// false disables it. onClose cannot be expressed and is rejected.
func ParseOptions(raw map[string]any) ([]Option, error) {
	known := make(map[Key]bool)
	for _, k := range Keys() {
		known[k] = true
	}

	var unknown []string
	for k := range raw {
		if !known[Key(k)] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.New("T001").
			WithField(strings.Join(unknown, ", ")).
			WithSuggestion("Known options: position, toastMsg, autoCloseTime, canClose, showProgress, pauseOnHover, pauseOnFocusLoss, type, theme")
	}

	var opts []Option
	for _, k := range Keys() {
		v, ok := raw[string(k)]
		if !ok {
			continue
		}
		o, err := parseOption(k, v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, nil
}

// ParseOptionsJSON decodes a JSON object into options.
func ParseOptionsJSON(data []byte) ([]Option, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New("T007").Wrap(err)
	}
	return ParseOptions(raw)
}

func parseOption(k Key, v any) (Option, error) {
	switch k {
	case KeyPosition:
		s, err := asString(k, v)
		if err != nil {
			return Option{}, err
		}
		p, err := ParsePosition(s)
		if err != nil {
			return Option{}, err
		}
		return WithPosition(p), nil

	case KeyMessage:
		s, err := asString(k, v)
		if err != nil {
			return Option{}, err
		}
		return WithMessage(s), nil

	case KeyAutoClose:
		if b, ok := v.(bool); ok && !b {
			return WithAutoClose(0), nil
		}
		ms, err := asMillis(k, v)
		if err != nil {
			return Option{}, err
		}
		return WithAutoClose(ms), nil

	case KeyOnClose:
		return Option{}, errors.New("T006").WithField(string(k))

	case KeyCanClose, KeyShowProgress, KeyPauseOnHover, KeyPauseOnFocusLoss:
		b, ok := v.(bool)
		if !ok {
			return Option{}, wrongType(k, "a boolean", v)
		}
		return Option{k, b}, nil

	case KeyType:
		s, err := asString(k, v)
		if err != nil {
			return Option{}, err
		}
		t, err := ParseType(s)
		if err != nil {
			return Option{}, err
		}
		return WithType(t), nil

	case KeyTheme:
		s, err := asString(k, v)
		if err != nil {
			return Option{}, err
		}
		th, err := ParseTheme(s)
		if err != nil {
			return Option{}, err
		}
		return WithTheme(th), nil
	}
	return Option{}, errors.New("T001").WithField(string(k))
}

func asString(k Key, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", wrongType(k, "a string", v)
	}
	return s, nil
}

func asMillis(k Key, v any) (time.Duration, error) {
	var ms float64
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, wrongType(k, "a number of milliseconds", v)
		}
		ms = f
	case float64:
		ms = n
	case float32:
		ms = float64(n)
	case int:
		ms = float64(n)
	case int64:
		ms = float64(n)
	case uint64:
		ms = float64(n)
	default:
		return 0, wrongType(k, "a number of milliseconds", v)
	}
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, wrongType(k, "a finite number of milliseconds", v)
	}
	if ms > maxMillis {
		return 0, errors.New("T005").
			WithField(string(k)).
			WithDetailf("%g milliseconds is out of range", ms)
	}
	// Any negative delay closes on the first counted frame.
	if ms < -maxMillis {
		ms = -maxMillis
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = float64(math.MaxInt64 / int64(time.Millisecond))

func wrongType(k Key, want string, got any) error {
	return errors.New("T005").
		WithField(string(k)).
		WithDetailf("expected %s, got %T", want, got)
}
