package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the canonical encoding of v. Map keys are sorted so equal
// values always hash the same.
func HashJSON(v any) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return Hash(data), nil
}

// ETag returns a strong entity tag for v, truncated to 16 hex digits.
func ETag(v any) (string, error) {
	h, err := HashJSON(v)
	if err != nil {
		return "", err
	}
	return `"` + h[:16] + `"`, nil
}

// VersionETag returns a weak entity tag for a monotonically versioned resource.
func VersionETag(prefix string, version uint64) string {
	return fmt.Sprintf(`W/"%s-%d"`, prefix, version)
}
