package window

import (
	"errors"
	"fmt"
	"strings"
)

// AppID identifies a desktop application and its single window
type AppID string

const (
	Finder   AppID = "finder"
	Contact  AppID = "contact"
	Resume   AppID = "resume"
	Safari   AppID = "safari"
	Photos   AppID = "photos"
	Terminal AppID = "terminal"
	TxtFile  AppID = "txtfile"
	ImgFile  AppID = "imgfile"
	Trash    AppID = "trash"
)

// ErrInvalidIdentifier is returned for ids outside the application set.
var ErrInvalidIdentifier = errors.New("invalid application id")

var knownApps = []AppID{Finder, Contact, Resume, Safari, Photos, Terminal, TxtFile, ImgFile, Trash}

// Apps returns every known application id in declaration order.
func Apps() []AppID {
	out := make([]AppID, len(knownApps))
	copy(out, knownApps)
	return out
}

// Valid reports whether id belongs to the application set.
func (id AppID) Valid() bool {
	for _, known := range knownApps {
		if id == known {
			return true
		}
	}
	return false
}

// IsViewer reports whether the window displays per-invocation content.
func (id AppID) IsViewer() bool {
	return id == TxtFile || id == ImgFile
}

func (id AppID) String() string { return string(id) }

// ParseAppID converts user input into an AppID
func ParseAppID(s string) (AppID, error) {
	id := AppID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id, nil
}

// Position is the top-left corner of a window in viewport pixels
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's width and height in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Geometry combines position and size
type Geometry struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
}

// Payload is the content handed to a window's renderer.
type Payload struct {
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description []string `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Href        string   `json:"href,omitempty"`
}

// ImageSource prefers Image over ImageURL, matching how viewers pick a picture.
func (p *Payload) ImageSource() string {
	if p == nil {
		return ""
	}
	if p.Image != "" {
		return p.Image
	}
	return p.ImageURL
}

func (p *Payload) clone() *Payload {
	if p == nil {
		return nil
	}
	c := *p
	if p.Description != nil {
		c.Description = append([]string(nil), p.Description...)
	}
	return &c
}

// State is the full record describing one application's window
type State struct {
	ID          AppID     `json:"id"`
	IsOpen      bool      `json:"isOpen"`
	IsMinimized bool      `json:"isMinimized"`
	IsMaximized bool      `json:"isMaximized"`
	ZIndex      int       `json:"zIndex"`
	Position    Position  `json:"position"`
	Size        Size      `json:"size"`
	PreMaximize *Geometry `json:"preMaximize,omitempty"`
	Payload     *Payload  `json:"payload"`
}

// Visible reports whether the window takes part in stacking.
func (s State) Visible() bool {
	return s.IsOpen && !s.IsMinimized
}

// Geometry returns the current position and size.
func (s State) Geometry() Geometry {
	return Geometry{Position: s.Position, Size: s.Size}
}

func (s *State) clone() State {
	c := *s
	if s.PreMaximize != nil {
		g := *s.PreMaximize
		c.PreMaximize = &g
	}
	c.Payload = s.Payload.clone()
	return c
}

// Op names a registry mutation in change events
type Op string

const (
	OpOpen     Op = "open"
	OpClose    Op = "close"
	OpMinimize Op = "minimize"
	OpMaximize Op = "maximize"
	OpRestore  Op = "restore"
	OpFocus    Op = "focus"
	OpMove     Op = "move"
	OpResize   Op = "resize"
	OpViewport Op = "viewport"
)

// Event describes an applied mutation and the resulting window state
type Event struct {
	Op    Op    `json:"op"`
	ID    AppID `json:"id,omitempty"`
	State State `json:"state"`
}

// Listener receives change events
type Listener func(Event)
