package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"difflin-api/internal/model"
)

// loadQuoteRequests ingests historical customer inquiries. Expected columns:
// request, job_type, order_size, event_type. Row order assigns the ids that
// quotes reference.
func (s *Seeder) loadQuoteRequests(ctx context.Context, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		req := &model.QuoteRequests{
			Id:        int64(i + 1),
			Request:   row["request"],
			JobType:   row["job_type"],
			OrderSize: row["order_size"],
			EventType: row["event_type"],
		}
		if req.Request == "" {
			continue
		}
		if err := s.quoteRequests.Insert(ctx, req); err != nil {
			return fmt.Errorf("seed: quote request %d: %w", req.Id, err)
		}
	}
	return nil
}

// loadQuotes ingests historical quotes. Expected columns: total_amount,
// quote_explanation, job_type, order_size, event_type. The row index ties
// each quote to the matching quote request.
func (s *Seeder) loadQuotes(ctx context.Context, path, orderDate string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for i, row := range rows {
		amount, err := strconv.ParseFloat(row["total_amount"], 64)
		if err != nil {
			return fmt.Errorf("seed: quote row %d: bad total_amount %q", i+1, row["total_amount"])
		}
		quote := &model.Quotes{
			RequestId:        int64(i + 1),
			TotalAmount:      amount,
			QuoteExplanation: row["quote_explanation"],
			OrderDate:        orderDate,
			JobType:          row["job_type"],
			OrderSize:        row["order_size"],
			EventType:        row["event_type"],
		}
		if err := s.quotes.Insert(ctx, quote); err != nil {
			return fmt.Errorf("seed: quote %d: %w", quote.RequestId, err)
		}
	}
	return nil
}

// readCSV loads a headered CSV into one map per row, keyed by column name.
func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("seed: read header of %s: %w", path, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seed: read %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
