package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCurl = `curl 'https://music.youtube.com/youtubei/v1/browse' \
  -H 'authorization: SAPISIDHASH abc123' \
  -H 'x-goog-authuser: 0' \
  -H 'cookie: VISITOR_INFO1_LIVE=xyz; SID=secret' \
  --data-raw '{}'`

func TestParseCurlCommand(t *testing.T) {
	t.Run("extracts headers and cookie", func(t *testing.T) {
		parsed, err := ParseCurlCommand([]byte(sampleCurl))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if parsed.Headers["authorization"] != "SAPISIDHASH abc123" {
			t.Errorf("unexpected authorization header: %q", parsed.Headers["authorization"])
		}
		if parsed.Headers["x-goog-authuser"] != "0" {
			t.Errorf("unexpected x-goog-authuser header: %q", parsed.Headers["x-goog-authuser"])
		}
		if parsed.Cookie != "VISITOR_INFO1_LIVE=xyz; SID=secret" {
			t.Errorf("unexpected cookie: %q", parsed.Cookie)
		}
		if _, ok := parsed.Headers["cookie"]; ok {
			t.Error("cookie should not appear in the headers map")
		}
	})

	t.Run("prefers explicit -b cookie flag", func(t *testing.T) {
		cmd := `curl 'https://example.com' -H 'accept: */*' -b 'SID=fromflag'`
		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if parsed.Cookie != "SID=fromflag" {
			t.Errorf("expected cookie from -b flag, got %q", parsed.Cookie)
		}
	})

	t.Run("handles double quoted headers", func(t *testing.T) {
		cmd := `curl "https://example.com" -H "accept: application/json"`
		parsed, err := ParseCurlCommand([]byte(cmd))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if parsed.Headers["accept"] != "application/json" {
			t.Errorf("unexpected accept header: %q", parsed.Headers["accept"])
		}
	})

	t.Run("joins continuation lines", func(t *testing.T) {
		cmd := "curl 'https://example.com' \\\n  -H 'accept: */*'"
		if _, err := ParseCurlCommand([]byte(cmd)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("fails when no headers present", func(t *testing.T) {
		if _, err := ParseCurlCommand([]byte("curl 'https://example.com'")); err == nil {
			t.Fatal("expected error for curl command without headers")
		}
	})

	t.Run("Raw emits sorted key value lines with cookie last", func(t *testing.T) {
		parsed := &AuthHeaders{
			Headers: map[string]string{"b-key": "2", "a-key": "1"},
			Cookie:  "SID=x",
		}

		lines := strings.Split(parsed.Raw(), "\n")
		want := []string{"a-key: 1", "b-key: 2", "cookie: SID=x"}
		if len(lines) != len(want) {
			t.Fatalf("expected %d lines, got %d", len(want), len(lines))
		}
		for i, line := range want {
			if lines[i] != line {
				t.Errorf("line %d: expected %q, got %q", i, line, lines[i])
			}
		}
	})
}

func TestParseCurlFile(t *testing.T) {
	t.Run("reads command from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "request.sh")
		if err := os.WriteFile(path, []byte(sampleCurl), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		parsed, err := ParseCurlFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(parsed.Headers) == 0 {
			t.Error("expected headers to be parsed")
		}
	})

	t.Run("fails on missing file", func(t *testing.T) {
		if _, err := ParseCurlFile("/nonexistent/request.sh"); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestLoadHeadersFile(t *testing.T) {
	t.Run("returns trimmed contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "headers.txt")
		if err := os.WriteFile(path, []byte("accept: */*\ncookie: SID=x\n\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if got := LoadHeadersFile(path); got != "accept: */*\ncookie: SID=x" {
			t.Errorf("unexpected headers: %q", got)
		}
	})

	t.Run("missing file yields empty string", func(t *testing.T) {
		if got := LoadHeadersFile("/nonexistent/headers.txt"); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
