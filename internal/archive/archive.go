package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// StageRecord preserves one raw participant response inside a run record.
type StageRecord struct {
	Stage string `msgpack:"stage"`
	Raw   string `msgpack:"raw"`
}

// RunRecord captures one end-to-end order run for audit and replay.
type RunRecord struct {
	Timestamp      time.Time     `msgpack:"timestamp"`
	RequestID      int           `msgpack:"request_id"`
	RequestDate    string        `msgpack:"request_date"`
	RequestText    string        `msgpack:"request_text"`
	Stages         []StageRecord `msgpack:"stages,omitempty"`
	Fulfilled      bool          `msgpack:"fulfilled"`
	Detail         string        `msgpack:"detail,omitempty"`
	Summary        string        `msgpack:"summary,omitempty"`
	CashBalance    float64       `msgpack:"cash_balance"`
	InventoryValue float64       `msgpack:"inventory_value"`
	ErrorMessage   string        `msgpack:"error_message,omitempty"`
}

// Writer persists run records to a directory as msgpack files.
type Writer struct {
	dir   string
	seq   int
	nowFn func() time.Time
}

// NewWriter constructs an archive writer rooted at dir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "archive"
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Writer{dir: dir, nowFn: time.Now}
}

// WriteRun writes one run record to a timestamped msgpack file and returns
// its path.
func (w *Writer) WriteRun(rec *RunRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("archive: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	name := fmt.Sprintf("run_%s_%05d.msgpack", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadRun loads a run record previously written by WriteRun.
func ReadRun(path string) (*RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec RunRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", path, err)
	}
	return &rec, nil
}
