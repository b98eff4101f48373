package object

import "strings"

// ValidateKey rejects empty keys, path separators, parent references and NUL bytes.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, "/\\\x00") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
