package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ytreport/internal/storage"
)

// ErrUnknownFormat is returned for an output format other than xlsx, csv or json.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// SheetName is the worksheet that receives the table in xlsx output.
const SheetName = "Sheet1"

// ParseFormat parses a format name, case-insensitively. An empty name is xlsx.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatXLSX, nil
	case FormatXLSX, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to xlsx.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	default:
		return FormatXLSX
	}
}

// Write renders t to w in the given format.
func Write(w io.Writer, format Format, t *Table) error {
	switch format {
	case FormatXLSX, "":
		return writeXLSX(w, t)
	case FormatCSV:
		return writeCSV(w, t)
	case FormatJSON:
		return writeJSON(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes t to path, replacing any existing file. The file appears only
// once it is complete; on error a previous file at path is left untouched.
// An empty format is inferred from the extension.
func Save(path string, format Format, t *Table) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}

	w, err := storage.NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if err := Write(w, format, t); err != nil {
		w.Abort()
		return fmt.Errorf("save report: %w", err)
	}
	if err := w.Commit(); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, t.Headers()); err != nil {
		return err
	}
	for i, row := range t.Rows() {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("xlsx row %d: %w", row, err)
	}
	return nil
}

func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// jsonRecord is the JSON form of a Record. Counters are null when the
// statistics lookup found nothing.
type jsonRecord struct {
	Title       string  `json:"title"`
	Views       *string `json:"views"`
	Likes       *string `json:"likes"`
	Comments    *string `json:"comments"`
	PublishedAt string  `json:"published_at"`
	Group       string  `json:"group"`
}

func writeJSON(w io.Writer, t *Table) error {
	records := t.Records()
	out := make([]jsonRecord, len(records))
	for i, r := range records {
		out[i] = jsonRecord{
			Title:       r.Title,
			PublishedAt: r.PublishedAt,
			Group:       r.Group,
		}
		if !r.StatsAbsent {
			out[i].Views = &r.Views
			out[i].Likes = &r.Likes
			out[i].Comments = &r.Comments
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
