package render

import (
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var (
	fsMu       sync.RWMutex
	templateFS fs.FS = os.DirFS("templates")
)

// SetFS sets the file system path templates and includes are loaded from.
// It must be called before the first render of a path template.
func SetFS(fsys fs.FS) {
	fsMu.Lock()
	defer fsMu.Unlock()
	templateFS = fsys
}

func currentFS() fs.FS {
	fsMu.RLock()
	defer fsMu.RUnlock()
	return templateFS
}

// escapedExtensions are the extensions whose output is HTML-escaped by default.
var escapedExtensions = map[string]bool{
	"html": true,
	"htm":  true,
	"xml":  true,
	"svg":  true,
}

// mimeTypes maps common template extensions to MIME types. Other extensions
// fall back to mime.TypeByExtension.
var mimeTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"htm":  "text/html; charset=utf-8",
	"txt":  "text/plain; charset=utf-8",
	"md":   "text/markdown; charset=utf-8",
	"xml":  "application/xml",
	"svg":  "image/svg+xml",
	"json": "application/json",
	"css":  "text/css; charset=utf-8",
	"js":   "text/javascript; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
}

// Compiled is a compiled template annotation.
type Compiled struct {
	name   string
	spec   Spec
	ext    string
	mime   string
	escape bool

	once     sync.Once
	tpl      *pongo2.Template
	sizeHint int
	err      error
}

// Compile parses the annotation args and compiles the template. Inline
// sources are compiled immediately; path templates on first use.
func Compile(name, args string) (*Compiled, error) {
	spec, err := ParseSpec(args)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	c := &Compiled{name: name, spec: spec, ext: spec.Ext}
	if c.ext == "" && spec.Path != "" {
		c.ext = strings.TrimPrefix(path.Ext(spec.Path), ".")
	}
	switch spec.Escape {
	case "html":
		c.escape = true
	case "none":
		c.escape = false
	default:
		c.escape = escapedExtensions[c.ext]
	}
	c.mime = spec.Mime
	if c.mime == "" {
		c.mime = mimeType(c.ext)
	}

	if spec.Path == "" {
		c.load()
		if c.err != nil {
			return nil, c.err
		}
	}
	return c, nil
}

// MustCompile is like Compile but panics on error. Generated code calls it
// from package-level variable initializers.
func MustCompile(name, args string) *Compiled {
	c, err := Compile(name, args)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Compiled) load() {
	c.once.Do(func() {
		fsys := currentFS()
		source := c.spec.Source
		if c.spec.Path != "" {
			data, err := fs.ReadFile(fsys, c.spec.Path)
			if err != nil {
				c.err = fmt.Errorf("template %s: %w", c.name, err)
				return
			}
			source = string(data)
		}

		set := pongo2.NewSet(c.name, pongo2.NewFSLoader(fsys))
		tpl, err := set.FromString(wrapEscape(source, c.escape))
		if err != nil {
			c.err = fmt.Errorf("template %s: %w", c.name, err)
			return
		}
		c.tpl = tpl
		c.sizeHint = sizeHint(source)
	})
}

// Render executes the template with ctx into a string.
func (c *Compiled) Render(ctx Context) (string, error) {
	if c.load(); c.err != nil {
		return "", c.err
	}
	var b strings.Builder
	b.Grow(c.sizeHint)
	if err := c.tpl.ExecuteWriter(pongo2.Context(ctx), &b); err != nil {
		return "", fmt.Errorf("template %s: %w", c.name, err)
	}
	return b.String(), nil
}

// RenderInto executes the template with ctx into w. Nothing is written when
// execution fails.
func (c *Compiled) RenderInto(w io.Writer, ctx Context) error {
	if c.load(); c.err != nil {
		return c.err
	}
	if err := c.tpl.ExecuteWriter(pongo2.Context(ctx), w); err != nil {
		return fmt.Errorf("template %s: %w", c.name, err)
	}
	return nil
}

// Extension returns the template extension, or "".
func (c *Compiled) Extension() string {
	return c.ext
}

// SizeHint returns the estimated output size.
func (c *Compiled) SizeHint() int {
	c.load()
	return c.sizeHint
}

// MimeType returns the output MIME type.
func (c *Compiled) MimeType() string {
	return c.mime
}

// wrapEscape pins the escaping mode of the template. Templates starting with
// an extends tag cannot be wrapped and keep pongo2's default (escaping on).
func wrapEscape(source string, escape bool) string {
	if strings.HasPrefix(strings.TrimSpace(source), "{% extends") {
		return source
	}
	mode := "off"
	if escape {
		mode = "on"
	}
	return "{% autoescape " + mode + " %}" + source + "{% endautoescape %}"
}

// sizeHint estimates the output size: static text plus 8 bytes per
// expression, with a quarter extra when expressions are present.
func sizeHint(source string) int {
	static, exprs := 0, 0
	for rest := source; rest != ""; {
		i := strings.IndexByte(rest, '{')
		if i < 0 || i == len(rest)-1 {
			static += len(rest)
			break
		}
		static += i
		closer := ""
		switch rest[i+1] {
		case '{':
			closer = "}}"
			exprs++
		case '%':
			closer = "%}"
		case '#':
			closer = "#}"
		default:
			static++
			rest = rest[i+1:]
			continue
		}
		j := strings.Index(rest[i+2:], closer)
		if j < 0 {
			break
		}
		rest = rest[i+2+j+len(closer):]
	}
	if exprs == 0 {
		return static
	}
	return (static + 8*exprs) * 5 / 4
}

func mimeType(ext string) string {
	if ext == "" {
		return ""
	}
	if m, ok := mimeTypes[ext]; ok {
		return m
	}
	if m := mime.TypeByExtension("." + ext); m != "" {
		return m
	}
	return "application/octet-stream"
}
