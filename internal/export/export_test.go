package export_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"parts-desk/internal/export"

	"github.com/xuri/excelize/v2"
)

func sampleTable() export.Table {
	return export.Table{
		Header: []string{"id", "partNr", "description", "qty"},
		Rows: [][]string{
			{"p1", "06A906461L", "Mass airflow sensor", "5"},
			{"p2", "1K0615301", `He said, "ten left"`, "10"},
			{"p3", "", "comma, in field", "0"},
		},
	}
}

func TestCSVQuotesEveryField(t *testing.T) {
	doc := export.Table{Header: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}.CSV()
	want := "\"a\",\"b\"\n\"1\",\"2\"\n"
	if doc != want {
		t.Errorf("CSV = %q, want %q", doc, want)
	}
}

func TestCSVEscapesQuotes(t *testing.T) {
	doc := sampleTable().CSV()
	if !strings.Contains(doc, `"He said, ""ten left"""`) {
		t.Errorf("embedded quotes not doubled:\n%s", doc)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	table := sampleTable()
	parsed, err := export.ParseCSV(table.CSV())
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if !reflect.DeepEqual(parsed, table) {
		t.Errorf("round trip = %+v, want %+v", parsed, table)
	}
}

func TestParseCSVEmptyDocument(t *testing.T) {
	if _, err := export.ParseCSV(""); err == nil {
		t.Error("ParseCSV(\"\") succeeded, want error")
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	table := sampleTable()
	data, err := table.XLSX()
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(table.Rows)+1 {
		t.Fatalf("sheet has %d rows, want %d", len(rows), len(table.Rows)+1)
	}
	if !reflect.DeepEqual(rows[0], table.Header) {
		t.Errorf("header = %v, want %v", rows[0], table.Header)
	}
	if rows[2][2] != `He said, "ten left"` {
		t.Errorf("cell C3 = %q, want the quoted description", rows[2][2])
	}
}
