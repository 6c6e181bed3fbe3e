package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SourcePath names a metadata document, e.g. "Account/tier". An empty path
// means no source is configured; accessors treat it as "do not fetch".
type SourcePath string

// IsEmpty reports whether no source is configured
func (p SourcePath) IsEmpty() bool {
	return p == ""
}

// Validate checks if the SourcePath is well formed. The empty path is valid
// (it disables fetching) so callers that require a source must check IsEmpty
// separately.
func (p SourcePath) Validate() error {
	if p == "" {
		return nil
	}
	if strings.HasPrefix(string(p), "/") || strings.HasSuffix(string(p), "/") {
		return goerr.New("source path must not start or end with a slash", goerr.V("path", p))
	}
	for _, seg := range strings.Split(string(p), "/") {
		if seg == "" {
			return goerr.New("source path must not contain empty segments", goerr.V("path", p))
		}
		if seg == "." || seg == ".." {
			return goerr.New("source path must not contain relative segments", goerr.V("path", p))
		}
		for _, r := range seg {
			if !isPathRune(r) {
				return goerr.New("source path contains invalid character",
					goerr.V("path", p),
					goerr.V("char", string(r)))
			}
		}
	}
	return nil
}

func isPathRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.':
		return true
	default:
		return false
	}
}

// String returns the string representation of SourcePath
func (p SourcePath) String() string {
	return string(p)
}
