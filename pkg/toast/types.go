package toast

import (
	"strings"

	"github.com/toastify-dev/toastify/internal/errors"
)

// Position is the screen anchor of a toast container.
type Position string

const (
	TopLeft      Position = "top-left"
	TopRight     Position = "top-right"
	TopCenter    Position = "top-center"
	BottomLeft   Position = "bottom-left"
	BottomRight  Position = "bottom-right"
	BottomCenter Position = "bottom-center"
)

// Positions returns every valid position.
func Positions() []Position {
	return []Position{TopLeft, TopRight, TopCenter, BottomLeft, BottomRight, BottomCenter}
}

// Valid reports whether p is one of the defined positions.
func (p Position) Valid() bool {
	for _, v := range Positions() {
		if p == v {
			return true
		}
	}
	return false
}

// ParsePosition parses a position name.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.TrimSpace(s))
	if !p.Valid() {
		return "", errors.New("T002").
			WithField(string(KeyPosition)).
			WithDetailf("%q is not a position", s).
			WithSuggestion("Use one of top-left, top-right, top-center, bottom-left, bottom-right, bottom-center")
	}
	return p, nil
}

// Type selects the icon and colour scheme of a toast.
type Type string

const (
	TypeDefault Type = "default"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Types returns every toast type.
func Types() []Type {
	return []Type{TypeDefault, TypeInfo, TypeSuccess, TypeWarning, TypeError}
}

// HasIcon reports whether the type renders an icon instead of the brand text.
func (k Type) HasIcon() bool {
	return k == TypeInfo || k == TypeSuccess || k == TypeWarning || k == TypeError
}

// ParseType parses a toast type name.
func ParseType(s string) (Type, error) {
	k := Type(strings.TrimSpace(s))
	if k != TypeDefault && !k.HasIcon() {
		return "", errors.New("T003").
			WithField(string(KeyType)).
			WithDetailf("%q is not a toast type", s).
			WithSuggestion("Use one of default, info, success, warning, error")
	}
	return k, nil
}

// Theme selects the light or dark colour variant.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.TrimSpace(s)) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", errors.New("T004").
		WithField(string(KeyTheme)).
		WithDetailf("%q is not a theme", s).
		WithSuggestion("Use light or dark")
}

// CloseReason says what started the removal of a toast.
type CloseReason string

const (
	ReasonTimeout CloseReason = "timeout"
	ReasonClick   CloseReason = "click"
	ReasonCaller  CloseReason = "caller"
)
