package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseFrontMatter splits a markdown document into its front matter, decoded
// into v, and the body. YAML (---) and TOML (+++) fences are recognised.
func ParseFrontMatter(content []byte, v any) (string, string, error) {
	str := normalizeLineEndings(string(content))
	str = strings.TrimPrefix(str, "\ufeff")

	// Check for YAML (---)
	if strings.HasPrefix(str, "---\n") {
		fm, body, ok := splitFence(str, "---")
		if !ok {
			return "", "", fmt.Errorf("unterminated yaml front matter")
		}
		dec := yaml.NewDecoder(strings.NewReader(fm))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return "", "", fmt.Errorf("yaml front matter: %w", err)
		}
		return body, "yaml", nil
	}
	// Check for TOML (+++)
	if strings.HasPrefix(str, "+++\n") {
		fm, body, ok := splitFence(str, "+++")
		if !ok {
			return "", "", fmt.Errorf("unterminated toml front matter")
		}
		if err := toml.NewDecoder(bytes.NewReader([]byte(fm))).DisallowUnknownFields().Decode(v); err != nil {
			return "", "", fmt.Errorf("toml front matter: %w", err)
		}
		return body, "toml", nil
	}

	return "", "", fmt.Errorf("unknown format")
}

// splitFence cuts "<fence>\n...\n<fence>\n body" on the closing fence line,
// so a fence marker inside the body does not end the front matter early.
func splitFence(str, fence string) (string, string, bool) {
	rest := str[len(fence)+1:]
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		return "", strings.TrimSpace(strings.TrimPrefix(rest, fence)), true
	}
	idx := strings.Index(rest, "\n"+fence+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			return rest[:len(rest)-len(fence)-1], "", true
		}
		return "", "", false
	}
	return rest[:idx], strings.TrimSpace(rest[idx+len(fence)+2:]), true
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
