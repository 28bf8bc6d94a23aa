// Package upload turns an uploaded file into a code submission string.
package upload

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Extensions lists the file extensions advertised by the upload control.
// They only hint at common programming languages: content is not validated
// against the declared extension, so any text-decodable file is accepted.
var Extensions = []string{".py", ".js", ".java", ".cpp", ".c", ".ts", ".go", ".rb", ".php"}

// ErrNotText reports a file whose bytes are not valid UTF-8 text.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// AcceptAttr renders Extensions as the value for the file input's accept
// attribute.
func AcceptAttr() string {
	return strings.Join(Extensions, ",")
}

// Allowed reports whether the filename carries one of the advertised
// extensions. Advisory only: uploads with other extensions are still
// accepted, Decode does not consult it.
func Allowed(filename string) bool {
	return hasAnySuffix(strings.ToLower(filename), Extensions...)
}

// Decode converts uploaded file bytes to a text submission. Invalid UTF-8
// is an input error; the submission is then treated as empty.
func Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

func hasAnySuffix(path string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
