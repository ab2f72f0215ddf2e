package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sitemd/sitemd/internal/model"
)

// Writer stores converted pages as Markdown files under an output root.
// Destination paths are unique per page by construction (see PagePath), so
// concurrent writes need no coordination beyond the filesystem itself.
type Writer struct {
	// outputDir is the root under which all page files are written.
	outputDir string

	// logger records written files.
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at outputDir.
func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		outputDir: outputDir,
		logger:    logger,
	}
}

// EnsureRoot creates the output root directory. An unwritable root is a
// fatal setup error; callers should abort the run if this fails.
func (w *Writer) EnsureRoot() error {
	if err := os.MkdirAll(w.outputDir, 0750); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", w.outputDir, err)
	}
	return nil
}

// WritePage writes a page's Markdown to its computed destination and
// returns the path. The file opens with a level-one heading of the source
// URL so each archived page records where it came from.
func (w *Writer) WritePage(page *model.Page) (string, error) {
	path, err := PagePath(w.outputDir, page.URL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("cannot create directory for %s: %w", path, err)
	}

	content := "# " + page.URL + "\n\n" + page.Markdown
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}

	w.logger.Info("saved page", "url", page.URL, "file", path)
	return path, nil
}

// OutputDir returns the output root.
func (w *Writer) OutputDir() string {
	return w.outputDir
}
