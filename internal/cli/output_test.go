package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/paleta/internal/colour"
	"github.com/jmylchreest/paleta/internal/extraction"
)

func TestFormatPalette(t *testing.T) {
	palette := colour.NewPalette([]colour.RGB{{R: 255}, {G: 128, B: 64}})

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"hex", "#ff0000\n#008040\n", false},
		{"rgb", "rgb(255, 0, 0)\nrgb(0, 128, 64)\n", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := formatPalette(palette, tt.format, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("formatPalette() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("formatPalette() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		got, err := formatPalette(palette, "json", false)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		if !strings.Contains(got, `"count": 2`) || !strings.HasSuffix(got, "}\n") {
			t.Errorf("formatPalette() = %q", got)
		}
	})

	t.Run("table", func(t *testing.T) {
		got, err := formatPalette(palette, "table", false)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(got), "\n")
		if len(lines) != 4 || !strings.HasPrefix(lines[2], "1  #ff0000  255, 0, 0") {
			t.Errorf("formatPalette() =\n%s", got)
		}
	})

	t.Run("preview", func(t *testing.T) {
		got, err := formatPalette(palette, "hex", true)
		if err != nil {
			t.Fatalf("formatPalette() error = %v", err)
		}
		if !strings.Contains(got, "\033[48;2;255;0;0m") || !strings.Contains(got, "#ff0000") {
			t.Errorf("formatPalette() = %q, want swatch and hex", got)
		}
	})
}

func TestAccuracyValue(t *testing.T) {
	v := newAccuracyValue(colour.DefaultAccuracy)
	if v.String() != "medium" || v.Type() != "accuracy" {
		t.Fatalf("default = %q (%s)", v.String(), v.Type())
	}

	for in, want := range map[string]string{"high": "high", "LOW": "low", "0": "high", "7": "7"} {
		if err := v.Set(in); err != nil {
			t.Errorf("Set(%q) error = %v", in, err)
			continue
		}
		if v.String() != want {
			t.Errorf("Set(%q) -> %q, want %q", in, v.String(), want)
		}
	}

	for _, in := range []string{"ultra", "-1"} {
		if err := v.Set(in); err == nil {
			t.Errorf("Set(%q) expected error", in)
		}
	}
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &stderrNotifier{w: &buf}

	plain := errors.New("boom")
	if err := n.report(plain); err != plain {
		t.Errorf("report() before notify = %v, want the error unchanged", err)
	}

	n.Notify(extraction.MessageNoImageLoaded)
	if !strings.Contains(buf.String(), Message(extraction.MessageNoImageLoaded)) {
		t.Errorf("Notify() wrote %q", buf.String())
	}

	var reported *reportedError
	if err := n.report(plain); !errors.As(err, &reported) || !errors.Is(err, plain) {
		t.Errorf("report() after notify = %v, want wrapped reportedError", err)
	}

	if got := Message("unknown-key"); got != "unknown-key" {
		t.Errorf("Message(unknown) = %q", got)
	}
}

func TestFileSaver(t *testing.T) {
	record := extraction.PaletteRecord{Colors: []colour.RGB{{R: 1, G: 2, B: 3}}}

	t.Run("writes and reports success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		s := &fileSaver{path: path, logger: hclog.NewNullLogger()}

		called := false
		s.SavePalette(record, func() { called = true })
		if s.err != nil || !called {
			t.Fatalf("SavePalette() err = %v, onSaved called = %v", s.err, called)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "#010203\n" {
			t.Errorf("file = %q", data)
		}
	})

	t.Run("failure does not report success", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		s := &fileSaver{path: filepath.Join(blocker, "out.txt"), logger: hclog.NewNullLogger()}

		called := false
		s.SavePalette(record, func() { called = true })
		if s.err == nil || called {
			t.Errorf("SavePalette() err = %v, onSaved called = %v", s.err, called)
		}
	})
}
