package presenter

import (
	"fmt"
	"io"

	"pharmacy-distance/internal/models"

	"github.com/olekukonko/tablewriter"
)

const Title = "The closest pharmacies are:"

// Render writes the ranked pharmacies as a table in the order given. It writes
// nothing and reports false when there is nothing to show.
func Render(w io.Writer, results []models.RankedPharmacy) (bool, error) {
	if len(results) == 0 {
		return false, nil
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", Title); err != nil {
		return false, err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(models.RankedHeaders)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, r := range results {
		table.Append(r.Fields())
	}
	table.Render()
	return true, nil
}
