package toast

import (
	"embed"
	"strings"
)

//go:embed icons/*.svg
var iconFS embed.FS

// Icons maps each icon-bearing type to its SVG markup.
type Icons map[Type]string

// For returns the markup for k, falling back to the embedded icon.
func (i Icons) For(k Type) string {
	if s, ok := i[k]; ok && s != "" {
		return s
	}
	return defaultIcons[k]
}

// Clone returns a copy of the icon set.
func (i Icons) Clone() Icons {
	out := make(Icons, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

var defaultIcons = loadEmbeddedIcons()

func loadEmbeddedIcons() Icons {
	icons := make(Icons)
	for _, k := range Types() {
		if !k.HasIcon() {
			continue
		}
		data, err := iconFS.ReadFile("icons/" + string(k) + ".svg")
		if err != nil {
			panic("toast: missing embedded icon " + string(k))
		}
		icons[k] = strings.TrimSpace(string(data))
	}
	return icons
}

// DefaultIcons returns a copy of the embedded icon set.
func DefaultIcons() Icons {
	return defaultIcons.Clone()
}
