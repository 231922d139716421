package cue

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ReadSheet reads the sheet at path and decodes it using the named
// character encoding, returning the non-empty, whitespace-trimmed lines in
// file order. An empty encoding name means UTF-8. If the named encoding
// fails to decode the bytes, one UTF-8 fallback attempt is made before
// giving up.
func ReadSheet(path, encoding string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return DecodeLines(data, encoding)
}

// DecodeLines decodes raw sheet bytes into trimmed non-empty lines.
func DecodeLines(data []byte, encoding string) ([]string, error) {
	text, err := decode(data, encoding)
	if err != nil {
		// One fallback attempt with the default Unicode decoding.
		text, err = decode(data, "")
		if err != nil {
			return nil, fmt.Errorf("%w: undecodable sheet text (encoding %q): %v", ErrParse, encoding, err)
		}
	}

	text = strings.TrimPrefix(text, "\uFEFF")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func decode(data []byte, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 input")
		}
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unknown encoding %q", name)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(decoded), nil
}
