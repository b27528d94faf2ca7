package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"freight-insights-go/internal/logger"
	"freight-insights-go/internal/types"
)

// Load reads the tabular source at path into open Row maps keyed by the
// header row. No schema is enforced; blank cells are simply absent from the
// row map and downstream resolution supplies defaults. This is the only
// part of the system that can fail.
func Load(path string) ([]types.Row, error) {
	log := logger.New().WithComponent("dataset.loader").WithField("path", path)

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		local, err := Fetch(path)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		defer os.Remove(local)
		path = local
	}

	var table [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		table, err = readCSV(path)
	} else {
		table, err = readXLSX(path)
	}
	if err != nil {
		log.WithError(err).Error("dataset read failed")
		return nil, err
	}
	if len(table) <= 1 {
		log.Error("no data rows")
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	header := table[0]
	rows := make([]types.Row, 0, len(table)-1)
	for _, r := range table[1:] {
		row := types.Row{}
		for i, cell := range r {
			if i >= len(header) {
				break
			}
			key := strings.TrimSpace(header[i])
			if key == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			row[key] = cell
		}
		rows = append(rows, row)
	}
	log.WithField("rows", len(rows)).Info("dataset loaded")
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are fine
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

// Preview returns the first n rows for the dashboard's row table.
func Preview(rows []types.Row, n int) []types.Row {
	if n < 0 {
		n = 0
	}
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n]
}
