package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pharmacy-distance/internal/models"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Pharmacy Name,Address,City,State,ZIP,DEA,NPI,field8
Main Street Pharmacy,1 Main St,Fresno,CA,93701,AB1234567,1234567890,
Desert Rx,22 Sand Rd,Reno,nv,89501,CD7654321,0987654321,x
"Corner Drug, Inc",3 Oak Ave,Oakland,Ca,94601,EF1111111,1111111111,
`

func TestReadCSV(t *testing.T) {
	pharmacies, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(pharmacies) != 3 {
		t.Fatalf("Expected 3 pharmacies, got %d", len(pharmacies))
	}

	p := pharmacies[0]
	if p.Name != "Main Street Pharmacy" || p.DEA != "AB1234567" || p.NPI != "1234567890" {
		t.Fatalf("Unexpected first pharmacy %+v", p)
	}
	if p.FormattedAddress != "1 Main St, Fresno, CA 93701" {
		t.Fatalf("Expected formatted address, got '%s'", p.FormattedAddress)
	}
	if p.Row != 2 {
		t.Fatalf("Expected row 2, got %d", p.Row)
	}
	if pharmacies[2].Name != "Corner Drug, Inc" {
		t.Fatalf("Expected quoted name to survive, got '%s'", pharmacies[2].Name)
	}
	if pharmacies[1].State != "nv" {
		t.Fatalf("Expected state to be kept as written, got '%s'", pharmacies[1].State)
	}
}

func TestReadCSVColumnOrderByName(t *testing.T) {
	in := "NPI,DEA,ZIP,State,City,Address,Pharmacy Name\n1,2,93701,CA,Fresno,1 Main St,Rx\n"
	pharmacies, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if pharmacies[0].Name != "Rx" || pharmacies[0].NPI != "1" || pharmacies[0].DEA != "2" {
		t.Fatalf("Unexpected pharmacy %+v", pharmacies[0])
	}
}

func TestReadCSVFailsWholeLoad(t *testing.T) {
	cases := map[string]string{
		"missing column": "Pharmacy Name,Address,City,State,ZIP,DEA\nRx,1 Main,Fresno,CA,93701,AB\n",
		"short row":      "Pharmacy Name,Address,City,State,ZIP,DEA,NPI,field8\nRx,1 Main,Fresno,CA,93701,AB,1,\nBad,2 Main\n",
		"empty state":    "Pharmacy Name,Address,City,State,ZIP,DEA,NPI,field8\nRx,1 Main,Fresno,,93701,AB,1,\n",
		"bad quoting":    "Pharmacy Name,Address,City,State,ZIP,DEA,NPI,field8\n\"Rx,1 Main,Fresno,CA,93701,AB,1,\n",
		"empty":          "",
	}
	for name, in := range cases {
		if pharmacies, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error, got %d pharmacies", name, len(pharmacies))
		}
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "AdministrationSites.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	pharmacies, err := Load(csvPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pharmacies) != 3 {
		t.Fatalf("Expected 3 pharmacies, got %d", len(pharmacies))
	}

	if _, err := Load(filepath.Join(dir, "roster.json"), ""); err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.csv"), ""); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Pharmacy Name", "Address", "City", "State", "ZIP", "DEA", "NPI", "field8"},
		{"Main Street Pharmacy", "1 Main St", "Fresno", "CA", "93701", "AB1234567", "1234567890"},
		{},
		{"Desert Rx", "22 Sand Rd", "Reno", "NV", "89501", "CD7654321", "0987654321", "x"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	pharmacies, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pharmacies) != 2 {
		t.Fatalf("Expected 2 pharmacies, got %d", len(pharmacies))
	}
	if pharmacies[1].FormattedAddress != "22 Sand Rd, Reno, NV 89501" {
		t.Fatalf("Unexpected formatted address '%s'", pharmacies[1].FormattedAddress)
	}

	if _, err := Load(path, "Nope"); err == nil {
		t.Fatal("Expected error for missing sheet")
	}
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closest.xlsx")
	results := []models.RankedPharmacy{
		{Name: "A", Address: "1 Main St", DEA: "AB", NPI: "1", Distance: "2.0 mi", DistanceValue: 3200},
		{Name: "B", Address: "2 Main St", DEA: "CD", NPI: "2", Distance: "5.0 mi", DistanceValue: 8000},
	}
	if err := WriteResults(path, results, "Closest"); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Closest")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(models.RankedHeaders, ",") {
		t.Fatalf("Unexpected header %v", rows[0])
	}
	if rows[1][0] != "A" || rows[2][5] != "8000" {
		t.Fatalf("Unexpected rows %v", rows[1:])
	}
}
