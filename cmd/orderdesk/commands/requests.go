package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// customerRequest is one row of the batch input file. Date is normalized to
// YYYY-MM-DD.
type customerRequest struct {
	Text string
	Date string
}

// Input files carry dates as M/D/YY; tolerate ISO dates as well.
var requestDateLayouts = []string{"1/2/06", "1/2/2006", "2006-01-02"}

func parseRequestDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range requestDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized request date %q", raw)
}

// loadRequests reads the batch file and returns the requests in chronological
// order. Expected columns: request, request_date.
func loadRequests(path string) ([]customerRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requests %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read requests header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	textIdx, ok := col["request"]
	if !ok {
		return nil, fmt.Errorf("requests file %s has no request column", path)
	}
	dateIdx, ok := col["request_date"]
	if !ok {
		return nil, fmt.Errorf("requests file %s has no request_date column", path)
	}

	type dated struct {
		req customerRequest
		at  time.Time
	}
	var rows []dated
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read requests %s: %w", path, err)
		}
		if textIdx >= len(record) || dateIdx >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[textIdx])
		if text == "" {
			continue
		}
		at, err := parseRequestDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("requests %s line %d: %w", path, line, err)
		}
		rows = append(rows, dated{
			req: customerRequest{Text: text, Date: at.Format("2006-01-02")},
			at:  at,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.Before(rows[j].at) })

	out := make([]customerRequest, len(rows))
	for i, row := range rows {
		out[i] = row.req
	}
	return out, nil
}
