// Package directory loads the company name → provider symbol table.
package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
)

// Column headers expected in the symbols file.
const (
	ColumnName   = "Company Name"
	ColumnSymbol = "Symbol"
)

// DefaultSuffix is the NSE market suffix appended to every symbol.
const DefaultSuffix = ".NS"

// Directory is an immutable name → symbol mapping.
type Directory struct {
	symbols map[string]string
}

// Load reads the CSV file at path and appends suffix to every symbol.
func Load(path, suffix string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols file: %w", err)
	}
	defer f.Close()

	d, err := Parse(f, suffix)
	if err != nil {
		return nil, fmt.Errorf("symbols file %s: %w", path, err)
	}
	return d, nil
}

// Parse reads a name/symbol table from r. Columns are located by header
// name so their order does not matter.
func Parse(r io.Reader, suffix string) (*Directory, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty symbols table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameIdx, symbolIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")) {
		case ColumnName:
			nameIdx = i
		case ColumnSymbol:
			symbolIdx = i
		}
	}
	if nameIdx < 0 || symbolIdx < 0 {
		return nil, fmt.Errorf("missing %q or %q column in header %v", ColumnName, ColumnSymbol, header)
	}

	symbols := make(map[string]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		symbols[rec[nameIdx]] = strings.TrimSpace(rec[symbolIdx]) + suffix
	}

	return &Directory{symbols: symbols}, nil
}

// Lookup returns the suffixed symbol for a company name.
func (d *Directory) Lookup(name string) (string, bool) {
	s, ok := d.symbols[name]
	return s, ok
}

// Len returns the number of companies in the directory.
func (d *Directory) Len() int {
	return len(d.symbols)
}

// All returns a copy of the full mapping.
func (d *Directory) All() map[string]string {
	return maps.Clone(d.symbols)
}
