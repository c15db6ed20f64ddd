package roster

import (
	"fmt"
	"path/filepath"
	"strings"

	"pharmacy-distance/internal/models"
)

// Column headers the roster must carry. Anything else is ignored.
const (
	ColName    = "Pharmacy Name"
	ColAddress = "Address"
	ColCity    = "City"
	ColState   = "State"
	ColZIP     = "ZIP"
	ColDEA     = "DEA"
	ColNPI     = "NPI"
)

var requiredColumns = []string{ColName, ColAddress, ColCity, ColState, ColZIP, ColDEA, ColNPI}

// Load reads a roster from a .csv or .xlsx file. sheet only applies to
// spreadsheets; empty means the first sheet.
func Load(path, sheet string) ([]models.Pharmacy, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", "":
		return LoadCSV(path)
	case ".xlsx", ".xlsm":
		return LoadSpreadsheet(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", filepath.Ext(path))
	}
}

// columnIndex maps each required header to its position.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

// parseRows turns the header and data rows into pharmacies. Rows are numbered
// from 2 since row 1 is the header.
func parseRows(header []string, rows [][]string, strict bool) ([]models.Pharmacy, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	pharmacies := make([]models.Pharmacy, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		if strict && len(row) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", rowNum, len(header), len(row))
		}
		get := func(col string) string {
			pos := idx[col]
			if pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		p := models.Pharmacy{
			Name:    get(ColName),
			Address: get(ColAddress),
			City:    get(ColCity),
			State:   get(ColState),
			ZIP:     get(ColZIP),
			DEA:     get(ColDEA),
			NPI:     get(ColNPI),
			Row:     rowNum,
		}
		if p.State == "" {
			return nil, fmt.Errorf("row %d: empty %s", rowNum, ColState)
		}
		p.FormattedAddress = models.FormatAddress(p.Address, p.City, p.State, p.ZIP)
		pharmacies = append(pharmacies, p)
	}
	return pharmacies, nil
}
