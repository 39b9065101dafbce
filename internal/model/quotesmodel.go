package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ QuotesModel = (*customQuotesModel)(nil)

// Quotes is one historical quote tied to its originating request.
type Quotes struct {
	RequestId        int64   `db:"request_id"`
	TotalAmount      float64 `db:"total_amount"`
	QuoteExplanation string  `db:"quote_explanation"`
	OrderDate        string  `db:"order_date"`
	JobType          string  `db:"job_type"`
	OrderSize        string  `db:"order_size"`
	EventType        string  `db:"event_type"`
}

// QuoteMatch is a search hit joined with the original request text.
type QuoteMatch struct {
	OriginalRequest  string  `db:"original_request"`
	TotalAmount      float64 `db:"total_amount"`
	QuoteExplanation string  `db:"quote_explanation"`
	JobType          string  `db:"job_type"`
	OrderSize        string  `db:"order_size"`
	EventType        string  `db:"event_type"`
}

type (
	// QuotesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customQuotesModel.
	QuotesModel interface {
		Insert(ctx context.Context, data *Quotes) error
		Search(ctx context.Context, terms []string, limit int) ([]QuoteMatch, error)
		DeleteAll(ctx context.Context) error
	}

	customQuotesModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewQuotesModel returns a model for the database table.
func NewQuotesModel(conn sqlx.SqlConn) QuotesModel {
	return &customQuotesModel{
		conn:  conn,
		table: "quotes",
	}
}

func (m *customQuotesModel) Insert(ctx context.Context, data *Quotes) error {
	query := fmt.Sprintf(`INSERT INTO %s (request_id, total_amount, quote_explanation, order_date, job_type, order_size, event_type) VALUES ($1, $2, $3, $4, $5, $6, $7)`, m.table)
	_, err := m.conn.ExecCtx(ctx, query,
		data.RequestId, data.TotalAmount, data.QuoteExplanation, data.OrderDate,
		data.JobType, data.OrderSize, data.EventType)
	return err
}

// Search returns quotes whose explanation or originating request mentions any
// of the given terms, most recent first. Terms match case-insensitively.
func (m *customQuotesModel) Search(ctx context.Context, terms []string, limit int) ([]QuoteMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	var conditions []string
	var args []interface{}
	idx := 1
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		conditions = append(conditions,
			fmt.Sprintf("(LOWER(q.quote_explanation) LIKE $%d OR LOWER(r.request) LIKE $%d)", idx, idx))
		args = append(args, "%"+strings.ToLower(term)+"%")
		idx++
	}
	if len(conditions) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
SELECT r.request AS original_request,
       q.total_amount,
       q.quote_explanation,
       q.job_type,
       q.order_size,
       q.event_type
FROM %s q
JOIN quote_requests r ON q.request_id = r.id
WHERE %s
ORDER BY q.request_id DESC
LIMIT $%d`, m.table, strings.Join(conditions, " OR "), idx)
	args = append(args, limit)

	var rows []QuoteMatch
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *customQuotesModel) DeleteAll(ctx context.Context) error {
	_, err := m.conn.ExecCtx(ctx, fmt.Sprintf(`DELETE FROM %s`, m.table))
	return err
}
