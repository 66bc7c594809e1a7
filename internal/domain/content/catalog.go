package content

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

//go:embed catalog.yaml
var builtin []byte

// Options controls catalog loading
type Options struct {
	// Dir is scanned recursively for *.yaml and *.yml fragments merged over
	// the built-in catalog. Empty means built-in only.
	Dir string
}

// Catalog is the immutable content tree. Safe for concurrent reads.
type Catalog struct {
	doc   document
	index map[string]*Node
	paths []string
}

// Default returns the built-in catalog. It panics if the embedded YAML is
// malformed, which is a build defect.
func Default() *Catalog {
	c, err := Load(Options{}, nil)
	if err != nil {
		panic(fmt.Sprintf("content: built-in catalog: %v", err))
	}
	return c
}

// Load parses the built-in catalog and merges any fragments found in opts.Dir.
func Load(opts Options, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := parse(builtin)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}

	if opts.Dir != "" {
		files, err := scan(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", opts.Dir, err)
		}
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f, err)
			}
			frag, err := parse(data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", f, err)
			}
			doc.merge(frag)
			logger.Info("merged catalog fragment", zap.String("file", f))
		}
	}

	return build(doc)
}

func parse(data []byte) (document, error) {
	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return document{}, err
	}
	return doc, nil
}

// scan returns YAML files under dir in lexical order.
// fastwalk invokes the callback from several goroutines.
func scan(dir string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			mu.Lock()
			files = append(files, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// merge overlays a fragment. Dock entries replace by id, locations with a
// known type gain children, lists are appended.
func (d *document) merge(frag document) {
	if frag.Profile != nil {
		d.Profile = frag.Profile
	}

	for _, app := range frag.Dock {
		replaced := false
		for i := range d.Dock {
			if d.Dock[i].ID == app.ID {
				d.Dock[i] = app
				replaced = true
				break
			}
		}
		if !replaced {
			d.Dock = append(d.Dock, app)
		}
	}

	for _, loc := range frag.Locations {
		if existing := d.location(loc.Type); existing != nil {
			existing.Children = append(existing.Children, loc.Children...)
			continue
		}
		d.Locations = append(d.Locations, loc)
	}

	d.Gallery = append(d.Gallery, frag.Gallery...)
	d.Posts = append(d.Posts, frag.Posts...)
	d.TechStack = append(d.TechStack, frag.TechStack...)
	d.Socials = append(d.Socials, frag.Socials...)
}

func (d *document) location(typ string) *Location {
	for _, loc := range d.Locations {
		if loc.Type == typ {
			return loc
		}
	}
	return nil
}

func build(doc document) (*Catalog, error) {
	if doc.Profile == nil {
		doc.Profile = &Profile{}
	}
	for _, app := range doc.Dock {
		if !app.ID.Valid() {
			return nil, fmt.Errorf("dock entry %q: unknown application", app.ID)
		}
	}

	c := &Catalog{doc: doc, index: make(map[string]*Node)}
	for _, loc := range doc.Locations {
		if loc.Type == "" || strings.Contains(loc.Type, "/") {
			return nil, fmt.Errorf("location %q: invalid type", loc.Type)
		}
		if err := c.indexNodes(loc.Type, loc.Children); err != nil {
			return nil, err
		}
	}
	sort.Strings(c.paths)
	return c, nil
}

func (c *Catalog) indexNodes(prefix string, nodes []*Node) error {
	for _, n := range nodes {
		if n.Name == "" || strings.Contains(n.Name, "/") {
			return fmt.Errorf("%s: invalid node name %q", prefix, n.Name)
		}
		p := prefix + "/" + n.Name
		if _, dup := c.index[p]; dup {
			return fmt.Errorf("%s: duplicate path", p)
		}

		switch n.Kind {
		case KindFolder:
			c.index[p] = n
			if err := c.indexNodes(p, n.Children); err != nil {
				return err
			}
		case KindFile:
			switch n.FileType {
			case FileText, FileImage, FileURL, FileFigma, FilePDF:
			default:
				return fmt.Errorf("%s: unknown file type %q", p, n.FileType)
			}
			c.index[p] = n
			c.paths = append(c.paths, p)
		default:
			return fmt.Errorf("%s: unknown kind %q", p, n.Kind)
		}
	}
	return nil
}

// Lookup returns the node at a slash-separated path such as "about/me.png".
func (c *Catalog) Lookup(path string) (*Node, error) {
	n, ok := c.index[strings.Trim(path, "/")]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return n, nil
}

// File returns the file node at path.
func (c *Catalog) File(path string) (*Node, error) {
	n, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}
	if n.IsFolder() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	return n, nil
}

// Files returns every file path matching a doublestar pattern, sorted.
// An empty pattern matches everything.
func (c *Catalog) Files(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}

	out := []string{}
	for _, p := range c.paths {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Catalog) Profile() Profile { return *c.doc.Profile }

func (c *Catalog) Dock() []DockApp { return append([]DockApp(nil), c.doc.Dock...) }

// DockApp returns the dock entry for an application id.
func (c *Catalog) DockApp(id string) (DockApp, bool) {
	for _, app := range c.doc.Dock {
		if string(app.ID) == id {
			return app, true
		}
	}
	return DockApp{}, false
}

func (c *Catalog) Locations() []*Location { return c.doc.Locations }

// Location returns the top-level location with the given type.
func (c *Catalog) Location(typ string) (*Location, bool) {
	loc := c.doc.location(typ)
	return loc, loc != nil
}

func (c *Catalog) Gallery() []string { return append([]string(nil), c.doc.Gallery...) }

func (c *Catalog) Posts() []Post { return append([]Post(nil), c.doc.Posts...) }

func (c *Catalog) TechStack() []TechCategory { return append([]TechCategory(nil), c.doc.TechStack...) }

func (c *Catalog) Socials() []Social { return append([]Social(nil), c.doc.Socials...) }
