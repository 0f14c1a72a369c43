package format

import (
	"bytes"
	"strings"
	"testing"
)

type payload struct {
	Label string `json:"label" yaml:"label"`
}

type textPayload struct{ payload }

func (p textPayload) Text() string { return "label: " + p.Label + "\n\n" }

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v      any
		format string
		pretty bool
		want   string
	}{
		{name: "default json", v: payload{Label: "Go"}, format: "", want: "{\"label\":\"Go\"}\n"},
		{name: "pretty json", v: payload{Label: "Go"}, format: "json", pretty: true, want: "{\n  \"label\": \"Go\"\n}\n"},
		{name: "yaml", v: payload{Label: "Go"}, format: "yaml", want: "label: Go\n"},
		{name: "text via Texter", v: textPayload{payload{Label: "Go"}}, format: "text", want: "label: Go\n"},
		{name: "text falls back to yaml", v: []string{"a", "b"}, format: "TEXT", want: "- a\n- b\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := Write(&buf, tt.v, tt.format, tt.pretty); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("Write:\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()
	err := Write(&bytes.Buffer{}, 1, "edn", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
