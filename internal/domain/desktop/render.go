package desktop

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

// Payload fields can come from clients, so every string that reaches a view
// is stripped of markup.
var sanitizer = bluemonday.StrictPolicy()

// View is the renderable desktop
type View struct {
	Version  uint64        `json:"version"`
	Viewport window.Size   `json:"viewport"`
	Dock     []DockItem    `json:"dock"`
	Windows  []WindowView  `json:"windows"`
	Focused  window.AppID  `json:"focused,omitempty"`
	Terminal TerminalState `json:"terminal"`
}

// DockItem is a dock icon with its running indicator
type DockItem struct {
	ID      window.AppID `json:"id"`
	Name    string       `json:"name"`
	Icon    string       `json:"icon"`
	CanOpen bool         `json:"canOpen"`
	Running bool         `json:"running"`
}

// WindowView is one visible window, bottom to top in View.Windows
type WindowView struct {
	ID        window.AppID    `json:"id"`
	Title     string          `json:"title"`
	ZIndex    int             `json:"zIndex"`
	Position  window.Position `json:"position"`
	Size      window.Size     `json:"size"`
	Maximized bool            `json:"maximized"`
	Focused   bool            `json:"focused"`
	// Body is nil when there is nothing to display.
	Body *Body `json:"body,omitempty"`
}

// Body kinds
const (
	BodyText     = "text"
	BodyImage    = "image"
	BodyDocument = "document"
	BodyFinder   = "finder"
	BodyArticles = "articles"
	BodyGallery  = "gallery"
	BodyContact  = "contact"
	BodyTerminal = "terminal"
)

// Body is a window's content
type Body struct {
	Kind       string   `json:"kind"`
	Heading    string   `json:"heading,omitempty"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Image      string   `json:"image,omitempty"`
	Paragraphs []string `json:"paragraphs,omitempty"`
	Links      []Link   `json:"links,omitempty"`
	Images     []string `json:"images,omitempty"`
}

// Link is a labelled URL
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Date  string `json:"date,omitempty"`
}

// Render builds the view for a snapshot. It never mutates state.
func Render(s Snapshot) View {
	v := View{
		Version:  s.Version,
		Viewport: s.Viewport,
		Windows:  []WindowView{},
		Focused:  s.Top,
		Terminal: s.Terminal,
	}

	running := make(map[window.AppID]bool)
	for _, w := range s.Windows {
		if !w.IsOpen {
			continue
		}
		running[w.ID] = true
		if w.IsMinimized {
			continue
		}
		v.Windows = append(v.Windows, WindowView{
			ID:        w.ID,
			Title:     title(s.Catalog, w),
			ZIndex:    w.ZIndex,
			Position:  w.Position,
			Size:      w.Size,
			Maximized: w.IsMaximized,
			Focused:   w.ID == s.Top,
			Body:      body(s.Catalog, w),
		})
	}

	if s.Catalog != nil {
		for _, app := range s.Catalog.Dock() {
			v.Dock = append(v.Dock, DockItem{
				ID:      app.ID,
				Name:    app.Name,
				Icon:    app.Icon,
				CanOpen: app.CanOpen,
				Running: running[app.ID],
			})
		}
	}
	return v
}

func title(cat *content.Catalog, w window.State) string {
	if w.ID.IsViewer() {
		if w.Payload != nil && w.Payload.Name != "" {
			return clean(w.Payload.Name)
		}
		return ""
	}
	if cat != nil {
		if app, ok := cat.DockApp(string(w.ID)); ok {
			return app.Name
		}
	}
	name := string(w.ID)
	return strings.ToUpper(name[:1]) + name[1:]
}

// body renders a window's content. Viewers without a payload render nothing.
func body(cat *content.Catalog, w window.State) *Body {
	switch w.ID {
	case window.TxtFile:
		return textBody(w.Payload)
	case window.ImgFile:
		return imageBody(w.Payload)
	case window.Resume:
		b := &Body{Kind: BodyDocument, Heading: "Resume"}
		if src := safeURL(w.Payload.ImageSource()); src != "" {
			b.Image = src
		} else if cat != nil {
			if n, err := cat.File("resume/Resume.pdf"); err == nil {
				b.Image = n.ImageURL
			}
		}
		return b
	case window.Terminal:
		return &Body{Kind: BodyTerminal}
	}
	if cat == nil {
		return nil
	}

	switch w.ID {
	case window.Finder, window.Trash:
		b := &Body{Kind: BodyFinder}
		for _, loc := range cat.Locations() {
			if w.ID == window.Trash && loc.Type != "trash" {
				continue
			}
			b.Links = append(b.Links, Link{Label: loc.Name, URL: loc.Type})
		}
		return b
	case window.Safari:
		b := &Body{Kind: BodyArticles}
		for _, p := range cat.Posts() {
			b.Links = append(b.Links, Link{Label: p.Title, URL: p.Link, Date: p.Date})
		}
		return b
	case window.Photos:
		return &Body{Kind: BodyGallery, Images: cat.Gallery()}
	case window.Contact:
		b := &Body{Kind: BodyContact, Heading: "Let's Connect"}
		if email := cat.Profile().Email; email != "" {
			b.Paragraphs = []string{email}
		}
		for _, s := range cat.Socials() {
			b.Links = append(b.Links, Link{Label: s.Text, URL: s.Link})
		}
		return b
	}
	return nil
}

func textBody(p *window.Payload) *Body {
	if p == nil {
		return nil
	}
	b := &Body{
		Kind:     BodyText,
		Heading:  clean(p.Name),
		Subtitle: clean(p.Subtitle),
		Image:    safeURL(p.ImageSource()),
	}
	for _, para := range p.Description {
		if para = clean(para); para != "" {
			b.Paragraphs = append(b.Paragraphs, para)
		}
	}
	return b
}

func imageBody(p *window.Payload) *Body {
	if p == nil {
		return nil
	}
	src := safeURL(p.ImageSource())
	if src == "" {
		return nil
	}
	return &Body{Kind: BodyImage, Heading: clean(p.Name), Image: src}
}

// clean strips markup and returns plain text; the view carries text, not HTML.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

// safeURL keeps site-relative paths and http(s) URLs.
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "":
		if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
			return u.String()
		}
	case "http", "https":
		return u.String()
	}
	return ""
}
