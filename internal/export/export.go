// Package export renders uniform record lists into tabular documents.
// CSV is the guaranteed format; XLSX is a best-effort convenience and
// callers fall back to CSV when it fails.
package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows. Every row must have exactly
// len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// CSV renders the table with every field double-quoted and embedded
// quotes doubled. The quote-all dialect keeps the output stable for
// downstream consumers regardless of field content.
func (t Table) CSV() string {
	var b strings.Builder
	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// ParseCSV reads a document produced by CSV back into a Table. Standard
// RFC 4180 quoting rules apply, so the quote-all dialect round-trips
// exactly.
func ParseCSV(doc string) (Table, error) {
	r := csv.NewReader(strings.NewReader(doc))
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv document has no header row")
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

const sheetName = "Sheet1"

// XLSX renders the table as a single-sheet spreadsheet.
func (t Table) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, t.Header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, fields []string) error {
	for col, value := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell %d,%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
