package excel

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"degviz/domain/gene"
	"degviz/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader loads Excel and CSV workbooks into a gene table. Only the
// first sheet of a workbook is read; the first column is the gene
// symbol and the header row names the statistics.
type DataReader struct {
	resolver gene.Resolver
}

// NewDataReader creates a reader that resolves headers through the
// given schema resolver.
func NewDataReader(resolver gene.Resolver) *DataReader {
	return &DataReader{resolver: resolver}
}

// ReadFile loads a workbook from disk, dispatching on extension.
func (r *DataReader) ReadFile(path string) (*gene.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.LoadFailed("file not found: "+path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadFailed("failed to open file", err)
	}
	defer f.Close()
	return r.Read(f, filepath.Base(path))
}

// Read loads a workbook from a stream. The filename picks the format:
// .csv parses as CSV, anything else goes through excelize.
func (r *DataReader) Read(src io.Reader, filename string) (*gene.Table, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		return r.readCSV(src)
	}
	return r.readWorkbook(src)
}

func (r *DataReader) readWorkbook(src io.Reader) (*gene.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.LoadFailed("failed to parse Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.LoadFailed("workbook contains no sheets", nil)
	}

	// Always read the first sheet, whatever it is named.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.LoadFailed("failed to read sheet "+sheets[0], err)
	}
	return r.buildTable(rows)
}

func (r *DataReader) readCSV(src io.Reader) (*gene.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.LoadFailed("failed to parse CSV file", err)
	}
	return r.buildTable(rows)
}

// buildTable converts raw string rows into a gene table. Headers pass
// through the schema resolver; when a base header and its suffixed
// alias both occur, the base one wins.
func (r *DataReader) buildTable(rows [][]string) (*gene.Table, error) {
	if len(rows) < 2 {
		return nil, errors.LoadFailed("file must have at least a header row and one data row", nil)
	}

	headerRow := rows[0]
	if len(headerRow) < 2 {
		return nil, errors.LoadFailed("file must have a gene symbol column and at least one data column", nil)
	}

	// Column 0 is the symbol key; map the rest onto canonical names.
	type source struct {
		col       int
		fromAlias bool
	}
	sources := make(map[string]source)
	var columns []string
	for i := 1; i < len(headerRow); i++ {
		header := strings.TrimSpace(headerRow[i])
		if header == "" {
			continue
		}
		canon := r.resolver.Canonical(header)
		alias := canon != header
		if prev, seen := sources[canon]; seen {
			if prev.fromAlias && !alias {
				sources[canon] = source{col: i, fromAlias: false}
			}
			continue
		}
		sources[canon] = source{col: i, fromAlias: alias}
		columns = append(columns, canon)
	}
	if len(columns) == 0 {
		return nil, errors.LoadFailed("no data columns found in header row", nil)
	}

	table := gene.NewTable(columns)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		symbol := ""
		if len(row) > 0 {
			symbol = strings.TrimSpace(row[0])
		}
		if symbol == "" {
			continue
		}

		values := make(map[string]float64)
		for col, src := range sources {
			if src.col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[src.col])
			if cell == "" {
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				values[col] = v
			}
		}

		if err := table.Append(gene.Record{Symbol: symbol, Values: values}); err != nil {
			return nil, errors.LoadFailed("duplicate gene symbol in row "+strconv.Itoa(i+1)+": "+symbol, nil)
		}
	}

	if table.Len() == 0 {
		return nil, errors.LoadFailed("no gene rows found below the header", nil)
	}
	return table, nil
}
