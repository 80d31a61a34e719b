// Package assets loads the icon markup that typed toasts render.
//
// Icons are opaque SVG fragments keyed by toast type. A Source produces a
// full toast.Icons set; any icon a source does not provide falls back to the
// embedded default, so a partial override directory or bucket is valid.
//
// Sources:
//   - Embedded: the icons compiled into the binary.
//   - Dir: files named <type>.svg in a directory (or any fs.FS).
//   - S3: objects named <prefix><type>.svg in a bucket.
package assets

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/toast"
)

// Source loads an icon set.
type Source interface {
	Load(ctx context.Context) (toast.Icons, error)
	// Describe returns a short human-readable location for logs.
	Describe() string
}

// iconTypes are the toast types that render an icon.
func iconTypes() []toast.Type {
	var out []toast.Type
	for _, k := range toast.Types() {
		if k.HasIcon() {
			out = append(out, k)
		}
	}
	return out
}

// fileName returns the file or object name for a type.
func fileName(k toast.Type) string { return string(k) + ".svg" }

// Embedded returns the compiled-in icon set.
func Embedded() Source { return embedded{} }

type embedded struct{}

func (embedded) Load(context.Context) (toast.Icons, error) { return toast.DefaultIcons(), nil }
func (embedded) Describe() string                           { return "embedded" }

// Dir reads <type>.svg files from a directory.
func Dir(path string) Source {
	return &fsSource{fsys: os.DirFS(path), name: path}
}

// FS reads <type>.svg files from the root of fsys.
func FS(fsys fs.FS, name string) Source {
	return &fsSource{fsys: fsys, name: name}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s *fsSource) Describe() string { return "dir:" + s.name }

func (s *fsSource) Load(ctx context.Context) (toast.Icons, error) {
	icons := toast.DefaultIcons()
	for _, k := range iconTypes() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(s.fsys, fileName(k))
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.New("T300").WithField(fileName(k)).Wrap(err)
		}
		if markup := strings.TrimSpace(string(data)); markup != "" {
			icons[k] = markup
		}
	}
	return icons, nil
}
