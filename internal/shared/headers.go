// Utilities for capturing YouTube Music request headers from a browser cURL command.
//
// The backend authenticates YouTube Music calls with the raw request headers of a
// logged-in browser session. Users copy a request from devtools as cURL; this file
// extracts the headers into the newline-separated "Key: Value" form the backend expects.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// AuthHeaders represents headers and cookies parsed from a cURL command.
type AuthHeaders struct {
	Headers map[string]string
	Cookie  string
}

var (
	headerFlagRe = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	cookieFlagRe = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*AuthHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// Returns an error when the command carries neither -H flags nor a cookie.
func ParseCurlCommand(data []byte) (*AuthHeaders, error) {
	cmd := string(data)
	cmd = strings.ReplaceAll(cmd, "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	headers := make(map[string]string)
	var cookie string

	for _, match := range headerFlagRe.FindAllStringSubmatch(cmd, -1) {
		line := match[1]
		if line == "" {
			line = match[2]
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if cookie == "" {
				cookie = value
			}
			continue
		}
		headers[key] = value
	}

	if m := cookieFlagRe.FindStringSubmatch(cmd); len(m) > 1 {
		if m[1] != "" {
			cookie = m[1]
		} else if m[2] != "" {
			cookie = m[2]
		}
	}

	if len(headers) == 0 && cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command: %w", ErrInvalidInput)
	}

	return &AuthHeaders{Headers: headers, Cookie: cookie}, nil
}

// Raw converts parsed headers to the newline-separated "Key: Value" form.
//
// Keys are emitted in sorted order so output is stable across runs.
func (a *AuthHeaders) Raw() string {
	keys := make([]string, 0, len(a.Headers))
	for key := range a.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, a.Headers[key]))
	}

	if a.Cookie != "" {
		lines = append(lines, fmt.Sprintf("cookie: %s", a.Cookie))
	}

	return strings.Join(lines, "\n")
}

// LoadHeadersFile reads a previously captured headers file, trimming whitespace.
//
// An empty or missing file yields an empty string: the backend falls back to
// whatever credentials it has stored server-side.
func LoadHeadersFile(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
