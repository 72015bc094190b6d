package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/urltemplate/urltemplate"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Engine substitutes Params into templates read line by
// line.
type Engine struct {
	Params  map[string]string
	Options []urltemplate.Option
	// Format is FormatText (default) or FormatJSON.
	Format string
	// Logger receives rejected lines. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Summary counts processed and rejected templates.
type Summary struct {
	Total  int `json:"total"`
	Failed int `json:"failed"`
}

// Record is one JSON output line.
type Record struct {
	Line     int          `json:"line"`
	Template string       `json:"template"`
	URL      string       `json:"url,omitempty"`
	Error    *RecordError `json:"error,omitempty"`
}

// RecordError describes a rejected template.
type RecordError struct {
	Kind     string `json:"kind"`
	Position int    `json:"position"`
	Message  string `json:"message"`
}

// NewRecordError converts a substitution error into its
// JSON form. Errors that are not *urltemplate.Error keep
// only their message.
func NewRecordError(err error) *RecordError {
	var te *urltemplate.Error
	if errors.As(err, &te) {
		return &RecordError{
			Kind:     te.Kind.String(),
			Position: te.Position,
			Message:  te.Error(),
		}
	}

	return &RecordError{Kind: "Internal", Message: err.Error()}
}

// Run substitutes every non-blank line of in and writes the
// results to out. Rejected lines are logged and counted; they
// do not stop the run. The returned error covers I/O and
// configuration failures only.
func (en *Engine) Run(in io.Reader, out io.Writer) (Summary, error) {
	const errCtx = "running batch"

	var sum Summary

	format := en.Format
	if format == "" {
		format = FormatText
	}

	if format != FormatText && format != FormatJSON {
		return sum, fmt.Errorf(
			"%s: unknown format %q", errCtx, format,
		)
	}

	logger := en.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bw := bufio.NewWriter(out)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	sc := bufio.NewScanner(in)
	lineNo := 0

	for sc.Scan() {
		lineNo++

		raw := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		sum.Total++

		got, err := urltemplate.New(raw).SubstituteURL(
			en.Params, en.Options...,
		)

		rec := Record{Line: lineNo, Template: raw}

		if err != nil {
			sum.Failed++
			rec.Error = NewRecordError(err)

			logger.Warn(
				"template rejected",
				"line", lineNo,
				"kind", rec.Error.Kind,
				"position", rec.Error.Position,
			)
		} else {
			rec.URL = got.String()
		}

		if err := en.write(bw, enc, format, rec); err != nil {
			return sum, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf(
			"%s: reading input: %w", errCtx, err,
		)
	}

	if err := bw.Flush(); err != nil {
		return sum, fmt.Errorf(
			"%s: flushing output: %w", errCtx, err,
		)
	}

	return sum, nil
}

func (en *Engine) write(
	bw *bufio.Writer,
	enc *json.Encoder,
	format string,
	rec Record,
) error {
	const errCtx = "writing record"

	if format == FormatJSON {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	if rec.Error != nil {
		return nil
	}

	if _, err := bw.WriteString(rec.URL + "\n"); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Expand runs the engine over the template file at inPath
// and writes to outPath. An empty inPath reads stdin and an
// empty outPath writes stdout.
func (en *Engine) Expand(
	inPath string,
	outPath string,
) (Summary, error) {
	const errCtx = "expanding templates"

	in, closeIn, err := en.openInput(inPath)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if closeIn != nil {
		defer closeIn()
	}

	out, closeOut, err := en.openOutput(outPath)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if closeOut != nil {
		defer closeOut()
	}

	sum, err := en.Run(in, out)
	if err != nil {
		return sum, fmt.Errorf("%s: %w", errCtx, err)
	}

	return sum, nil
}

// openInput returns a reader for the templates. When inPath
// is empty it returns stdin with a nil closer.
func (en *Engine) openInput(
	inPath string,
) (io.Reader, func(), error) {
	const errCtx = "opening input"

	if inPath == "" {
		return os.Stdin, nil, nil
	}

	fi, err := os.Open(inPath) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // read-only close
	}, nil
}

// openOutput returns a writer for the results. When outPath
// is empty it returns stdout with a nil closer.
func (en *Engine) openOutput(
	outPath string,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		0o666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}
