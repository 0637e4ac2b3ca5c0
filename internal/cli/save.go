package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/paleta/internal/extraction"
)

// fileSaver writes a saved palette to disk. JSON is used for .json paths and
// one hex colour per line otherwise. The write happens synchronously; err
// holds the outcome of the last attempt.
type fileSaver struct {
	path   string
	logger hclog.Logger
	err    error
}

func (s *fileSaver) SavePalette(record extraction.PaletteRecord, onSaved func()) {
	s.err = s.write(record)
	if s.err != nil {
		s.logger.Error("failed to save palette", "path", s.path, "error", s.err)
		return
	}
	s.logger.Info("palette saved", "path", s.path, "colours", len(record.Colors))
	onSaved()
}

func (s *fileSaver) write(record extraction.PaletteRecord) error {
	format := "hex"
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		format = "json"
	}

	out, err := formatPalette(record.Palette(), format, false)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(out), 0o644); err != nil { // #nosec G306 - Palette files are not sensitive
		return fmt.Errorf("failed to write palette file: %w", err)
	}
	return nil
}
