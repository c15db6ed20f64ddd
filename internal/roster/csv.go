package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"pharmacy-distance/internal/models"
)

func LoadCSV(path string) ([]models.Pharmacy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	pharmacies, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pharmacies, nil
}

// ReadCSV parses a comma separated roster. Every row must have as many fields
// as the header.
func ReadCSV(r io.Reader) ([]models.Pharmacy, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = 0 // header sets the width

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty roster")
	}
	return parseRows(records[0], records[1:], true)
}
