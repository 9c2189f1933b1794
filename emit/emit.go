// package emit provides writers for publishing participant credentials in a variety of formats.
package emit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aaronland/go-entities-study"
)

const FORMAT_TEXT string = "text"
const FORMAT_JSONL string = "jsonl"
const FORMAT_CSV string = "csv"

// Writer publishes participant credentials.
type Writer interface {
	// WriteParticipant writes a single participant record. A record is written in full or not at all.
	WriteParticipant(context.Context, *study.Participant) error
	// Close flushes any pending output. It does not close the underlying io.Writer.
	Close() error
}

// Formats returns the sorted list of valid output formats.
func Formats() []string {

	formats := []string{
		FORMAT_TEXT,
		FORMAT_JSONL,
		FORMAT_CSV,
	}

	sort.Strings(formats)
	return formats
}

// NewWriter returns a new Writer for 'format' that emits to 'wr'.
func NewWriter(format string, wr io.Writer) (Writer, error) {

	switch strings.ToLower(format) {
	case FORMAT_TEXT:
		return NewTextWriter(wr), nil
	case FORMAT_JSONL:
		return NewJSONLWriter(wr), nil
	case FORMAT_CSV:
		return NewCSVWriter(wr)
	default:
		return nil, fmt.Errorf("Invalid format '%s', valid formats are: %s", format, strings.Join(Formats(), ", "))
	}
}

// TextWriter emits each participant as a labeled username line and password line followed by two newlines.
type TextWriter struct {
	wr io.Writer
}

func NewTextWriter(wr io.Writer) *TextWriter {
	return &TextWriter{wr: wr}
}

func (t *TextWriter) WriteParticipant(ctx context.Context, p *study.Participant) error {

	var b strings.Builder
	fmt.Fprintf(&b, "Username/participant id:  %s\n", p.Username)
	fmt.Fprintf(&b, "Password:                 %s\n", p.Password)
	b.WriteString("\n\n")

	_, err := io.WriteString(t.wr, b.String())

	if err != nil {
		return fmt.Errorf("Failed to write participant %s, %w", p.Username, err)
	}

	return nil
}

func (t *TextWriter) Close() error {
	return nil
}

// JSONLWriter emits each participant as a single line of JSON.
type JSONLWriter struct {
	enc *json.Encoder
}

func NewJSONLWriter(wr io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(wr)}
}

func (j *JSONLWriter) WriteParticipant(ctx context.Context, p *study.Participant) error {

	err := j.enc.Encode(p)

	if err != nil {
		return fmt.Errorf("Failed to encode participant %s, %w", p.Username, err)
	}

	return nil
}

func (j *JSONLWriter) Close() error {
	return nil
}

// CSVWriter emits a header row followed by one row per participant.
type CSVWriter struct {
	csv_wr *csv.Writer
}

var csv_fieldnames = []string{
	"username",
	"password",
	"group",
}

func NewCSVWriter(wr io.Writer) (*CSVWriter, error) {

	csv_wr := csv.NewWriter(wr)

	err := csv_wr.Write(csv_fieldnames)

	if err != nil {
		return nil, fmt.Errorf("Failed to write CSV header, %w", err)
	}

	c := &CSVWriter{
		csv_wr: csv_wr,
	}

	return c, nil
}

func (c *CSVWriter) WriteParticipant(ctx context.Context, p *study.Participant) error {

	row := []string{
		p.Username,
		p.Password,
		p.Group,
	}

	err := c.csv_wr.Write(row)

	if err != nil {
		return fmt.Errorf("Failed to write row for %s, %w", p.Username, err)
	}

	return nil
}

func (c *CSVWriter) Close() error {
	c.csv_wr.Flush()
	return c.csv_wr.Error()
}
