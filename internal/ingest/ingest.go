// Package ingest turns "name,amount" text into contributions.
//
// Malformed lines never reach the calculator: they are skipped and returned
// as LineError values so the caller can report them.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

var (
	ErrMalformedLine = errors.New("expected name,amount")
	ErrMissingName   = errors.New("missing participant name")
	ErrInvalidAmount = errors.New("amount is not a decimal number")
	ErrLineTooLong   = fmt.Errorf("line exceeds %d bytes", MaxLineLength)
)

// MaxLineLength bounds a single input line. Longer lines are rejected with
// ErrLineTooLong and parsing carries on with the next line.
const MaxLineLength = 4096

// quoteLimit caps how much of a rejected long line is kept in LineError.Text.
const quoteLimit = 64

// LineError describes one rejected input line.
type LineError struct {
	Line int    // 1-based line number
	Text string // the raw line, trimmed
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// Result holds the accepted contributions and the rejected lines of one input.
type Result struct {
	Contributions []models.Contribution
	Errors        []LineError
}

type options struct {
	lenient bool
}

// Option configures parsing.
type Option func(*options)

// Lenient ignores lines that contain no comma instead of reporting them.
// OCR output is full of headers and noise; only comma lines are candidates.
func Lenient() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// Parse reads one contribution per line. Blank lines are ignored.
// Only a read failure returns an error; bad lines end up in Result.Errors.
func Parse(r io.Reader, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Contributions: []models.Contribution{}}
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("failed to read input: %w", err)
		}

		text := strings.TrimSpace(raw)
		if tooLong {
			res.Errors = append(res.Errors, LineError{Line: lineNo, Text: quote(text), Err: ErrLineTooLong})
			continue
		}
		if text == "" {
			continue
		}
		if o.lenient && !strings.Contains(text, ",") {
			continue
		}

		c, err := parseLine(text)
		if err != nil {
			res.Errors = append(res.Errors, LineError{Line: lineNo, Text: text, Err: err})
			continue
		}
		res.Contributions = append(res.Contributions, c)
	}

	return res, nil
}

// readLine returns the next line without its terminator. Bytes beyond
// MaxLineLength are consumed but dropped, and tooLong is set.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var b strings.Builder
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if room := MaxLineLength - b.Len(); len(chunk) > room {
			chunk = chunk[:room]
			tooLong = true
		}
		b.Write(chunk)
		if !isPrefix {
			return b.String(), tooLong, nil
		}
	}
}

func quote(text string) string {
	runes := []rune(text)
	if len(runes) <= quoteLimit {
		return text
	}
	return string(runes[:quoteLimit]) + "..."
}

// ParseText parses an in-memory block of lines, e.g. pasted clipboard text.
func ParseText(text string, opts ...Option) Result {
	// strings.Reader never fails, so the error is always nil.
	res, _ := Parse(strings.NewReader(text), opts...)
	return res
}

// ParseFile parses the file at path.
func ParseFile(path string, opts ...Option) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(f, opts...)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func parseLine(text string) (models.Contribution, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 2 {
		return models.Contribution{}, ErrMalformedLine
	}

	name := models.NormalizeName(fields[0])
	if name == "" {
		return models.Contribution{}, ErrMissingName
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil {
		return models.Contribution{}, fmt.Errorf("%w: %q", ErrInvalidAmount, strings.TrimSpace(fields[1]))
	}

	return models.Contribution{Participant: name, Amount: amount}, nil
}
