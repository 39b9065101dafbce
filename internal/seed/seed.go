package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"difflin-api/internal/model"
)

// Defaults for a reproducible bootstrap.
const (
	DefaultSeed         = 137
	DefaultCoverage     = 0.4
	DefaultStartDate    = "2025-01-01"
	DefaultStartingCash = 50000.0
)

// PaperSupply is one catalog entry from the supplies file.
type PaperSupply struct {
	ItemName  string  `json:"item_name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unit_price"`
}

// Options controls the bootstrap.
type Options struct {
	SupplyFile   string
	QuotesFile   string
	RequestsFile string
	Seed         int64
	Coverage     float64
	StartDate    string
	StartingCash float64
}

func (o *Options) applyDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Coverage <= 0 || o.Coverage > 1 {
		o.Coverage = DefaultCoverage
	}
	if o.StartDate == "" {
		o.StartDate = DefaultStartDate
	}
	if o.StartingCash == 0 {
		o.StartingCash = DefaultStartingCash
	}
}

// Seeder initializes the database schema and opening records.
type Seeder struct {
	conn          sqlx.SqlConn
	inventory     model.InventoryModel
	transactions  model.TransactionsModel
	quotes        model.QuotesModel
	quoteRequests model.QuoteRequestsModel
}

// New builds a Seeder over the given connection and models.
func New(conn sqlx.SqlConn, inventory model.InventoryModel, transactions model.TransactionsModel,
	quotes model.QuotesModel, quoteRequests model.QuoteRequestsModel) *Seeder {
	return &Seeder{
		conn:          conn,
		inventory:     inventory,
		transactions:  transactions,
		quotes:        quotes,
		quoteRequests: quoteRequests,
	}
}

// Run creates the schema, wipes previous contents, and seeds the opening
// state: a sampled inventory catalog, an opening cash injection, one stock
// order per catalog item, and historical quotes from the CSV files.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	opts.applyDefaults()

	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := s.reset(ctx); err != nil {
		return err
	}

	supplies, err := LoadPaperSupplies(opts.SupplyFile)
	if err != nil {
		return err
	}
	sampled := SampleInventory(supplies, opts.Coverage, opts.Seed)

	// Opening cash arrives as a sales row with no item attached.
	if _, err := s.transactions.Insert(ctx, &model.Transactions{
		TransactionType: model.TransactionSale,
		Price:           sql.NullFloat64{Float64: opts.StartingCash, Valid: true},
		TransactionDate: opts.StartDate,
	}); err != nil {
		return fmt.Errorf("seed: opening cash: %w", err)
	}

	for _, item := range sampled {
		if err := s.inventory.Insert(ctx, &item); err != nil {
			return fmt.Errorf("seed: catalog item %s: %w", item.ItemName, err)
		}
		if _, err := s.transactions.Insert(ctx, &model.Transactions{
			ItemName:        sql.NullString{String: item.ItemName, Valid: true},
			TransactionType: model.TransactionStockOrder,
			Units:           sql.NullInt64{Int64: item.CurrentStock, Valid: true},
			Price:           sql.NullFloat64{Float64: float64(item.CurrentStock) * item.UnitPrice, Valid: true},
			TransactionDate: opts.StartDate,
		}); err != nil {
			return fmt.Errorf("seed: opening stock for %s: %w", item.ItemName, err)
		}
	}

	if opts.RequestsFile != "" {
		if err := s.loadQuoteRequests(ctx, opts.RequestsFile); err != nil {
			return err
		}
	}
	if opts.QuotesFile != "" {
		if err := s.loadQuotes(ctx, opts.QuotesFile, opts.StartDate); err != nil {
			return err
		}
	}

	logx.WithContext(ctx).Infof("seeded %d catalog items, opening cash %.2f on %s",
		len(sampled), opts.StartingCash, opts.StartDate)
	return nil
}

func (s *Seeder) reset(ctx context.Context) error {
	for _, m := range []interface{ DeleteAll(context.Context) error }{
		s.transactions, s.inventory, s.quotes, s.quoteRequests,
	} {
		if err := m.DeleteAll(ctx); err != nil {
			return fmt.Errorf("seed: reset: %w", err)
		}
	}
	return nil
}

// LoadPaperSupplies reads the catalog definition file.
func LoadPaperSupplies(path string) ([]PaperSupply, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read supplies %s: %w", path, err)
	}
	var supplies []PaperSupply
	if err := json.Unmarshal(data, &supplies); err != nil {
		return nil, fmt.Errorf("seed: parse supplies %s: %w", path, err)
	}
	return supplies, nil
}

// SampleInventory deterministically selects a coverage fraction of the
// catalog and assigns each selected item an opening stock between 200 and 799
// and a minimum stock level between 50 and 149.
func SampleInventory(supplies []PaperSupply, coverage float64, seed int64) []model.Inventory {
	rng := rand.New(rand.NewSource(seed))
	count := int(float64(len(supplies)) * coverage)

	perm := rng.Perm(len(supplies))
	selected := perm[:count]

	out := make([]model.Inventory, 0, count)
	for _, idx := range selected {
		item := supplies[idx]
		out = append(out, model.Inventory{
			ItemName:      item.ItemName,
			Category:      item.Category,
			UnitPrice:     item.UnitPrice,
			CurrentStock:  200 + rng.Int63n(600),
			MinStockLevel: 50 + rng.Int63n(100),
		})
	}
	return out
}
