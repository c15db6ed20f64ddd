package roster

import (
	"fmt"
	"strings"

	"pharmacy-distance/internal/models"

	"github.com/xuri/excelize/v2"
)

// LoadSpreadsheet reads the roster from an .xlsx workbook. An empty sheet name
// picks the first sheet.
func LoadSpreadsheet(path, sheet string) ([]models.Pharmacy, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	pharmacies, err := ReadSheet(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pharmacies, nil
}

func ReadSheet(f *excelize.File, sheet string) ([]models.Pharmacy, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	// GetRows drops trailing empty cells, so rows are not width-checked here.
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}
	return parseRows(rows[0], data, false)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteResults exports a ranked list to a new workbook at path.
func WriteResults(path string, results []models.RankedPharmacy, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	headers := make([]interface{}, len(models.RankedHeaders))
	for i, h := range models.RankedHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, r := range results {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			r.Name, r.Address, r.DEA, r.NPI,
			r.Distance, r.DistanceValue,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	return f.SaveAs(path)
}
