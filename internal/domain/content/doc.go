// Package content provides the static portfolio catalog behind the desktop.
//
// The catalog is read-only data: the dock, the Finder locations with their
// folders and files, the gallery, and the informational blocks the terminal
// prints. The built-in catalog is embedded as YAML; extra YAML fragments can
// be merged in from a directory at startup.
//
// Features:
//   - Embedded YAML catalog (goccy/go-yaml)
//   - Directory overlay scanned with fastwalk
//   - Slash-separated file paths with doublestar glob matching
//   - Terminal blocks for about, skills, projects and contact
//
// Example Usage:
//
//	cat, err := content.Load(content.Options{Dir: "./content"}, logger)
//	node, err := cat.Lookup("work/DocuMind RAG/docmind.png")
//	paths, err := cat.Files("work/**/*.txt")
package content
