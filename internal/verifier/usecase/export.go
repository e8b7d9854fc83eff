package usecase

import (
	"bytes"
	"encoding/csv"

	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
)

// ExportFileName is the download name of an exported result set.
const ExportFileName = "verification_results.csv"

//nolint:gochecknoglobals // fixed column layout
var exportHeader = []string{"Email", "Status", "Sub-status"}

// ToCSV renders results as CSV with the header Email,Status,Sub-status.
//
// Plain fields are written as-is; a field holding a comma, quote or line
// break is quoted. A missing sub-status becomes an empty cell.
func ToCSV(results []entity.Result) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // writes into a bytes.Buffer cannot fail
	w.Write(exportHeader)
	for _, r := range results {
		//nolint:errcheck // writes into a bytes.Buffer cannot fail
		w.Write([]string{r.Email, r.Status, r.SubStatusOrEmpty()})
	}
	w.Flush()

	return buf.Bytes()
}
