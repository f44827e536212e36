// Package export writes activities as delimited text files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

// Header lists the exported columns in order
var Header = []string{"id", "start_time", "end_time", "activity_type", "status", "description"}

// FileName returns a unique export file name stamped with now
func FileName(now time.Time) string {
	return fmt.Sprintf("activities_%s_%s.csv", now.Format("20060102_150405"), uuid.New().String()[:8])
}

// WriteCSV writes a header row and one row per activity. Fields containing
// the delimiter, a double quote or a line break are quoted with inner
// quotes doubled.
func WriteCSV(w io.Writer, activities []models.Activity, delimiter string) error {
	if delimiter == "" {
		return fmt.Errorf("%w: delimiter cannot be empty", tmrerrors.ErrInvalidArgument)
	}

	bw := bufio.NewWriter(w)
	if err := writeRow(bw, Header, delimiter); err != nil {
		return err
	}
	for _, a := range activities {
		if err := writeRow(bw, record(a), delimiter); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile exports activities into a new file inside dir and returns its path
func WriteFile(dir string, activities []models.Activity, delimiter string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", tmrerrors.Wrap(err, "failed to create export directory")
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", tmrerrors.Wrap(err, "failed to create export file")
	}

	if err := WriteCSV(f, activities, delimiter); err != nil {
		_ = f.Close()
		return "", tmrerrors.Wrap(err, "failed to write export file")
	}
	if err := f.Close(); err != nil {
		return "", tmrerrors.Wrap(err, "failed to close export file")
	}
	return path, nil
}

func record(a models.Activity) []string {
	end := ""
	if a.EndTime != nil {
		end = a.EndTime.Format(models.DateTimeLayout)
	}
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.StartTime.Format(models.DateTimeLayout),
		end,
		a.Type.String(),
		a.Status.String(),
		a.Description,
	}
}

func writeRow(w *bufio.Writer, fields []string, delimiter string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := w.WriteString(delimiter); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(escape(field, delimiter)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

func escape(field, delimiter string) string {
	if !strings.Contains(field, delimiter) && !strings.ContainsAny(field, "\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
