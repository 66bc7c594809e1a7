// Package id provides ULID generation for the backend.
//
// IDs are prefixed ULIDs:
//   - Lexicographic sortability: newer desktops list after older ones
//   - Prefixed types: desk_* and req_* are readable in logs
//   - Type safety: separate string types prevent mixing them up
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrMalformed is returned when a string is not a prefixed ULID of the expected type.
var ErrMalformed = errors.New("malformed id")

// DesktopID identifies one desktop held by the hub
type DesktopID string

// RequestID identifies an API request
type RequestID string

const (
	DesktopPrefix = "desk"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand, made monotonic
// within the same millisecond.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewDesktopID generates a new desktop ID
func NewDesktopID() DesktopID {
	return DesktopID(Default().GenerateWithPrefix(DesktopPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id DesktopID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// ParseDesktopID validates a desktop id received from a client.
func ParseDesktopID(s string) (DesktopID, error) {
	if err := checkPrefixed(s, DesktopPrefix); err != nil {
		return "", err
	}
	return DesktopID(s), nil
}

// ParseRequestID validates a request id propagated by a caller.
func ParseRequestID(s string) (RequestID, error) {
	if err := checkPrefixed(s, RequestPrefix); err != nil {
		return "", err
	}
	return RequestID(s), nil
}

func checkPrefixed(s, prefix string) error {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok || !IsValid(rest) {
		return fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return nil
}

// IsValid checks if a string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Timestamp extracts the creation time from a prefixed or bare ULID
func Timestamp(id string) (time.Time, error) {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return ulid.Time(parsed.Time()), nil
}
