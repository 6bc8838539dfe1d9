package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type entry struct {
	Level      string            `json:"level"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var entries []entry
	dec := json.NewDecoder(buf)
	for dec.More() {
		var e entry
		if err := dec.Decode(&e); err != nil {
			t.Fatal(err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestJSONLogger(t *testing.T) {
	t.Run("INFO Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000"})
		entries := decodeLines(t, &buf)
		if len(entries) != 1 {
			t.Fatalf("expected 1 log line; got %d", len(entries))
		}
		if entries[0].Level != "INFO" || entries[0].Properties["addr"] != ":4000" {
			t.Errorf("unexpected entry %+v", entries[0])
		}
		if entries[0].Trace != "" {
			t.Errorf("expected no trace for INFO entries")
		}
	})

	t.Run("WARNING Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintWarning("login attempt with invalid password", map[string]string{"email": "a@b.com"})
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Level != "WARNING" {
			t.Fatalf("unexpected entries %+v", entries)
		}
	})

	t.Run("ERROR Level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("ERROR log"), nil)
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Message != "ERROR log" {
			t.Fatalf("unexpected entries %+v", entries)
		}
		if entries[0].Trace == "" {
			t.Errorf("expected a stack trace for ERROR entries")
		}
	})

	t.Run("below minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelFatal)
		l.PrintInfo("ignored", nil)
		l.PrintWarning("ignored", nil)
		l.PrintError(errors.New("ignored"), nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
	})

	t.Run("io.Writer", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, LevelInfo)
		if _, err := l.Write([]byte("http: TLS handshake error")); err != nil {
			t.Fatal(err)
		}
		entries := decodeLines(t, &buf)
		if len(entries) != 1 || entries[0].Level != "ERROR" {
			t.Fatalf("unexpected entries %+v", entries)
		}
	})
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, LevelInfo)
	l := base.With("layer", "service")
	l.PrintInfo("book created", map[string]string{"id": "8"})
	l.PrintInfo("overridden", map[string]string{"layer": "handler"})
	base.PrintInfo("plain", nil)

	entries := decodeLines(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("expected 3 log lines; got %d", len(entries))
	}
	if entries[0].Properties["layer"] != "service" || entries[0].Properties["id"] != "8" {
		t.Errorf("unexpected properties %v", entries[0].Properties)
	}
	if entries[1].Properties["layer"] != "handler" {
		t.Errorf("call properties should win; got %v", entries[1].Properties)
	}
	if len(entries[2].Properties) != 0 {
		t.Errorf("parent logger should be unchanged; got %v", entries[2].Properties)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"Warn", LevelWarning, false},
		{"ERROR", LevelError, false},
		{"off", LevelOff, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}
