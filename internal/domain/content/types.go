package content

import (
	"errors"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

var (
	// ErrNotFound is returned when a catalog path does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrNotFile is returned when a path names a folder where a file is expected.
	ErrNotFile = errors.New("not a file")
	// ErrBadPattern is returned for malformed glob patterns.
	ErrBadPattern = errors.New("invalid glob pattern")
)

// Kind distinguishes folders from files
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// FileType decides which viewer opens a file
type FileType string

const (
	FileText  FileType = "txt"
	FileImage FileType = "img"
	FileURL   FileType = "url"
	FileFigma FileType = "fig"
	FilePDF   FileType = "pdf"
)

// Node is a folder or file inside a location
type Node struct {
	Name        string   `yaml:"name" json:"name"`
	Kind        Kind     `yaml:"kind" json:"kind"`
	FileType    FileType `yaml:"fileType,omitempty" json:"fileType,omitempty"`
	Icon        string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	ImageURL    string   `yaml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Href        string   `yaml:"href,omitempty" json:"href,omitempty"`
	Children    []*Node  `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsFolder reports whether the node holds children.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Payload converts a file into the content handed to a viewer window.
func (n *Node) Payload() *window.Payload {
	return &window.Payload{
		Name:        n.Name,
		Subtitle:    n.Subtitle,
		Description: append([]string(nil), n.Description...),
		Image:       n.Image,
		ImageURL:    n.ImageURL,
		Href:        n.Href,
	}
}

// Location is a top-level Finder sidebar entry
type Location struct {
	Type     string  `yaml:"type" json:"type"`
	Name     string  `yaml:"name" json:"name"`
	Icon     string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	Children []*Node `yaml:"children" json:"children"`
}

// DockApp is one icon in the dock
type DockApp struct {
	ID      window.AppID `yaml:"id" json:"id"`
	Name    string       `yaml:"name" json:"name"`
	Icon    string       `yaml:"icon" json:"icon"`
	CanOpen bool         `yaml:"canOpen" json:"canOpen"`
}

// Post is an article shown in the browser window
type Post struct {
	Date  string `yaml:"date" json:"date"`
	Title string `yaml:"title" json:"title"`
	Image string `yaml:"image,omitempty" json:"image,omitempty"`
	Link  string `yaml:"link" json:"link"`
}

// TechCategory groups skills under a heading
type TechCategory struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

// Social is a contact link
type Social struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// Profile is the developer summary printed by the about command
type Profile struct {
	Name    string   `yaml:"name" json:"name"`
	Role    string   `yaml:"role" json:"role"`
	Email   string   `yaml:"email,omitempty" json:"email,omitempty"`
	Summary []string `yaml:"summary" json:"summary"`
}

// document is the on-disk YAML shape
type document struct {
	Profile   *Profile       `yaml:"profile,omitempty"`
	Dock      []DockApp      `yaml:"dock,omitempty"`
	Locations []*Location    `yaml:"locations,omitempty"`
	Gallery   []string       `yaml:"gallery,omitempty"`
	Posts     []Post         `yaml:"posts,omitempty"`
	TechStack []TechCategory `yaml:"techStack,omitempty"`
	Socials   []Social       `yaml:"socials,omitempty"`
}
