package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// Request size limits (in bytes)
const (
	MaxJSONSize    = 64 * 1024 // request bodies
	MaxPayloadSize = 32 * 1024 // viewer payloads
)

// String length limits
const (
	MaxPathLength  = 512
	MaxURLLength   = 2048
	MaxGlobLength  = 256
	MaxInputLength = 1024
	MaxNameLength  = 256
	MaxParagraphs  = 64
	MaxCoordinate  = 100_000
	MaxDimension   = 16_384
)

// JSONSizeValidator validates JSON size limits
type JSONSizeValidator struct {
	maxSize int
}

// NewJSONSizeValidator creates a new validator with the specified max size
func NewJSONSizeValidator(maxSize int) *JSONSizeValidator {
	return &JSONSizeValidator{maxSize: maxSize}
}

// ValidateSize checks if the data size is within limits
func (v *JSONSizeValidator) ValidateSize(data []byte) error {
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("JSON size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateJSON validates both size and JSON structure
func (v *JSONSizeValidator) ValidateJSON(data []byte) error {
	if err := v.ValidateSize(data); err != nil {
		return err
	}
	if !sonic.ConfigStd.Valid(data) {
		return fmt.Errorf("invalid JSON")
	}
	return nil
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if value == "" {
		return nil
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%s is not valid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return nil
}

// ValidateCatalogPath validates a slash-separated catalog path
func ValidateCatalogPath(path string) error {
	if err := ValidateString(path, "path", 1, MaxPathLength, true); err != nil {
		return err
	}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "." || seg == ".." {
			return fmt.Errorf("path must not contain %q segments", seg)
		}
	}
	return nil
}

// ValidateGlob validates a catalog glob pattern. Empty means match all.
func ValidateGlob(pattern string) error {
	return ValidateString(pattern, "glob", 0, MaxGlobLength, false)
}

// ValidateURL validates a client supplied image or link URL
func ValidateURL(url, fieldName string) error {
	return ValidateString(url, fieldName, 1, MaxURLLength, true)
}

// ValidateInput validates a terminal submission. Empty input is allowed.
func ValidateInput(input string) error {
	return ValidateString(input, "input", 0, MaxInputLength, false)
}

// ValidatePoint validates window coordinates
func ValidatePoint(x, y int) error {
	if x < -MaxCoordinate || x > MaxCoordinate || y < -MaxCoordinate || y > MaxCoordinate {
		return fmt.Errorf("position (%d, %d) out of range", x, y)
	}
	return nil
}

// ValidateDimensions validates a width and height pair
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("size %dx%d must be positive", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("size %dx%d exceeds %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateParagraphs validates viewer payload text
func ValidateParagraphs(paragraphs []string) error {
	if len(paragraphs) > MaxParagraphs {
		return fmt.Errorf("too many paragraphs (maximum %d)", MaxParagraphs)
	}
	total := 0
	for i, p := range paragraphs {
		if !utf8.ValidString(p) {
			return fmt.Errorf("paragraph[%d] is not valid UTF-8", i)
		}
		total += len(p)
	}
	if total > MaxPayloadSize {
		return fmt.Errorf("payload text %d bytes exceeds maximum %d bytes", total, MaxPayloadSize)
	}
	return nil
}
