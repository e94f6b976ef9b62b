package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// csvHeader matches the column layout the planning spreadsheet expects.
var csvHeader = []string{"Day", "Type", "Idea", "Caption", "Audience", "Time", "Hashtags"}

// ExportCSV writes a content plan to dir as a timestamped CSV file and
// returns its path. The file starts with a UTF-8 BOM so spreadsheet tools
// pick the right encoding.
func ExportCSV(dir string, ideas []Idea, now time.Time) (string, error) {
	if len(ideas) == 0 {
		return "", fmt.Errorf("no ideas to export")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("content_plan_%s.csv", now.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\ufeff"); err != nil {
		return "", fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, idea := range ideas {
		record := []string{
			strconv.Itoa(idea.Day),
			idea.Type,
			idea.Idea,
			idea.CaptionDraft,
			idea.Audience,
			idea.BestTime,
			idea.Hashtags,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return path, nil
}
