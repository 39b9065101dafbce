package model

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ QuoteRequestsModel = (*customQuoteRequestsModel)(nil)

// QuoteRequests is one historical customer inquiry.
type QuoteRequests struct {
	Id        int64  `db:"id"`
	Request   string `db:"request"`
	JobType   string `db:"job_type"`
	OrderSize string `db:"order_size"`
	EventType string `db:"event_type"`
}

type (
	// QuoteRequestsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customQuoteRequestsModel.
	QuoteRequestsModel interface {
		Insert(ctx context.Context, data *QuoteRequests) error
		FindOne(ctx context.Context, id int64) (*QuoteRequests, error)
		DeleteAll(ctx context.Context) error
	}

	customQuoteRequestsModel struct {
		conn  sqlx.SqlConn
		table string
	}
)

// NewQuoteRequestsModel returns a model for the database table.
func NewQuoteRequestsModel(conn sqlx.SqlConn) QuoteRequestsModel {
	return &customQuoteRequestsModel{
		conn:  conn,
		table: "quote_requests",
	}
}

func (m *customQuoteRequestsModel) Insert(ctx context.Context, data *QuoteRequests) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, request, job_type, order_size, event_type) VALUES ($1, $2, $3, $4, $5)`, m.table)
	_, err := m.conn.ExecCtx(ctx, query, data.Id, data.Request, data.JobType, data.OrderSize, data.EventType)
	return err
}

func (m *customQuoteRequestsModel) FindOne(ctx context.Context, id int64) (*QuoteRequests, error) {
	query := fmt.Sprintf(`SELECT id, request, job_type, order_size, event_type FROM %s WHERE id = $1 LIMIT 1`, m.table)
	var resp QuoteRequests
	err := m.conn.QueryRowCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *customQuoteRequestsModel) DeleteAll(ctx context.Context) error {
	_, err := m.conn.ExecCtx(ctx, fmt.Sprintf(`DELETE FROM %s`, m.table))
	return err
}
