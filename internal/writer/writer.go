package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"hn_daily/internal/models"
)

// FileName returns the outline note name for a digest date.
func FileName(d models.DateInfo) string {
	return "hacker_news_daily___" + d.String() + ".md"
}

// Write creates dir if needed and writes content to the note for d,
// replacing any existing file. It returns the path written.
func Write(dir string, d models.DateInfo, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}

	path := filepath.Join(dir, FileName(d))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return path, nil
}
