package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ktlens/ktlens/internal/review"
)

// ErrRender indicates that report synthesis failed. Render errors are
// fatal: a half-rendered report is worse than none, so nothing partial
// is ever kept.
var ErrRender = errors.New("report render failed")

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or
// stdout). When writing to a file, the report is staged to a temp file
// and renamed only after a complete render.
func WriteReport(report *review.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		if err := writer.Write(os.Stdout, report); err != nil {
			return fmt.Errorf("%w: %v", ErrRender, err)
		}
		return nil
	}

	tmp, err := os.CreateTemp("", "ktlens-report-*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writer.Write(tmp, report); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
