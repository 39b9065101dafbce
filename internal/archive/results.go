package archive

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ResultRow is one line of the run results file.
type ResultRow struct {
	RequestID      int
	RequestDate    string
	CashBalance    float64
	InventoryValue float64
	Response       string
}

var resultsHeader = []string{"request_id", "request_date", "cash_balance", "inventory_value", "response"}

// WriteResults writes the per-request outcomes of a batch run to a CSV file.
func WriteResults(path string, rows []ResultRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("archive: results dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("archive: create results %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(resultsHeader); err != nil {
		return fmt.Errorf("archive: write results header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.RequestID),
			row.RequestDate,
			strconv.FormatFloat(row.CashBalance, 'f', 2, 64),
			strconv.FormatFloat(row.InventoryValue, 'f', 2, 64),
			row.Response,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("archive: write results row %d: %w", row.RequestID, err)
		}
	}
	w.Flush()
	return w.Error()
}
