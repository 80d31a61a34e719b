package toast

import "github.com/toastify-dev/toastify/pkg/dom"

// Brand is the text shown by default-type toasts instead of an icon.
const Brand = "🦚 Toastify"

// Custom properties written by applyAppearance.
const (
	varLightBg     = "--light_bg"
	varDarkBg      = "--dark_bg"
	varLightBorder = "--light-border"
	varLightColor  = "--light_color"
	varDarkColor   = "--dark_color"
)

var appearanceVars = []string{varLightBg, varDarkBg, varLightBorder, varLightColor, varDarkColor}

func (t *Toast) setType(k Type) {
	if icon := t.iconNode(); icon != nil {
		icon.Remove()
	}
	t.kind = k

	if k.HasIcon() {
		t.el.SetText(t.message)
		t.prependIcon()
	} else {
		t.el.SetText(Brand)
	}
	t.applyAppearance()
}

func (t *Toast) setTheme(th Theme) {
	t.theme = th
	t.applyAppearance()
}

func (t *Toast) iconNode() *dom.Node {
	for _, c := range t.el.Children() {
		if c.Kind == dom.KindElement && c.Classes().Has(ClassIcon) {
			return c
		}
	}
	return nil
}

func (t *Toast) prependIcon() {
	icon := t.doc.CreateElement("div")
	icon.Classes().Add(ClassIcon)
	icon.SetInnerMarkup(t.host.Icons.For(t.kind))
	t.el.Prepend(icon)
}

// applyAppearance recomputes the type and theme classes and colour
// variables from the current enum values. Exactly one type class is present
// afterwards; typed toasts carry no theme class and keep their type colours
// under either theme.
func (t *Toast) applyAppearance() {
	kind := t.kind
	if kind == "" {
		kind = TypeDefault
	}
	theme := t.theme
	if theme == "" {
		theme = ThemeLight
	}

	classes := t.el.Classes()
	for _, k := range Types() {
		if k != kind {
			classes.Remove(string(k))
		}
	}
	classes.Add(string(kind))

	for _, v := range appearanceVars {
		t.el.RemoveStyle(v)
	}

	if kind.HasIcon() {
		classes.Remove(string(ThemeLight), string(ThemeDark))
		t.el.SetStyle(varLightBg, "var(--"+string(kind)+"-primary)")
		t.el.SetStyle(varDarkBg, "var(--"+string(kind)+"-primary)")
		t.el.SetStyle(varLightBorder, "var(--"+string(kind)+"-secondary)")
		if theme == ThemeDark {
			t.el.SetStyle(varLightColor, "var(--dark_color)")
		}
		return
	}

	if theme == ThemeDark {
		classes.Remove(string(ThemeLight))
		classes.Add(string(ThemeDark))
		t.el.SetStyle(varLightBg, "var(--dark_bg)")
		t.el.SetStyle(varLightColor, "var(--dark_color)")
		return
	}
	classes.Remove(string(ThemeDark))
	classes.Add(string(ThemeLight))
	t.el.SetStyle(varDarkBg, "var(--light_bg)")
	t.el.SetStyle(varDarkColor, "var(--light_color)")
}
