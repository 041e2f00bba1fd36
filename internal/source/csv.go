package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource reads CSV rows from a file on disk. The first row is treated as
// the header; rows are returned as header → value mappings.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.Path }

// Rows reads and parses the CSV file.
func (s *FileSource) Rows(ctx context.Context) ([]map[string]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", s.Path, err)
	}
	defer f.Close()

	return parseCSV(f)
}

// parseCSV reads header-keyed rows from CSV text. Ragged rows are tolerated:
// short rows leave trailing fields absent, long rows drop the extras. Fully
// empty rows are skipped.
func parseCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sources disagree on column counts
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		if isEmptyRow(record) {
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isEmptyRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
