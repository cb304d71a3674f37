package catalog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// validCodenameRE matches the allowed character set for profile codenames:
// alphanumeric plus dot, underscore, and hyphen.
var validCodenameRE = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,253}$`)

// ValidateCodename checks that codename is a well-formed profile codename.
// Returns a non-nil error with a user-readable message if validation fails.
func ValidateCodename(codename string) error {
	if codename == "" {
		return fmt.Errorf("codename must not be empty")
	}
	if strings.ContainsAny(codename, "/\\\x00\n\r") {
		return fmt.Errorf("codename %q contains invalid characters", codename)
	}
	if !validCodenameRE.MatchString(codename) {
		return fmt.Errorf("codename %q is invalid (allowed: a-z A-Z 0-9 . _ - up to 253 chars)", codename)
	}
	return nil
}

// ValidateFilePath cleans path and ensures it contains no null bytes or
// other characters that could be used for path-injection attacks. It does
// not restrict the directory — CLI users are expected to provide arbitrary
// local file paths. Returns the cleaned path.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path must not be empty")
	}
	if strings.ContainsAny(path, "\x00") {
		return "", fmt.Errorf("file path contains null byte")
	}
	return filepath.Clean(path), nil
}
