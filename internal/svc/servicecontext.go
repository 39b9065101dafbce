package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"difflin-api/internal/config"
	"difflin-api/internal/model"
	"difflin-api/internal/participant"
	"difflin-api/internal/seed"
	"difflin-api/internal/store"
	"difflin-api/pkg/confkit"
	llmpkg "difflin-api/pkg/llm"
	"difflin-api/pkg/prompt"
	workflowpkg "difflin-api/pkg/workflow"
)

type ServiceContext struct {
	Config *config.Config

	LLMClient      llmpkg.LLMClient
	WorkflowConfig *workflowpkg.Config
	Prompts        *prompt.Library
	Coordinator    *workflowpkg.Coordinator

	// DB wiring, present only when Postgres.DSN is configured.
	DBConn             sqlx.SqlConn
	InventoryModel     model.InventoryModel
	TransactionsModel  model.TransactionsModel
	QuotesModel        model.QuotesModel
	QuoteRequestsModel model.QuoteRequestsModel
	Store              *store.Store
	Seeder             *seed.Seeder
}

func NewServiceContext(c *config.Config) *ServiceContext {
	svc := &ServiceContext{Config: c}

	// Only inject DB models when DSN provided.
	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.InventoryModel = model.NewInventoryModel(conn)
		svc.TransactionsModel = model.NewTransactionsModel(conn)
		svc.QuotesModel = model.NewQuotesModel(conn)
		svc.QuoteRequestsModel = model.NewQuoteRequestsModel(conn)
		svc.Store = store.New(svc.InventoryModel, svc.TransactionsModel,
			svc.QuotesModel, svc.QuoteRequestsModel)
		svc.Seeder = seed.New(conn, svc.InventoryModel, svc.TransactionsModel,
			svc.QuotesModel, svc.QuoteRequestsModel)
	}

	if c.LLM.Value != nil {
		llmCfg := c.LLM.Value
		// Test environment always uses a low-cost model.
		if c.IsTestEnv() {
			llmCfg = llmCfg.Clone()
			llmCfg.DefaultModel = "gpt-4o-mini"
		}
		client, err := llmpkg.NewClient(llmCfg)
		if err != nil {
			log.Fatalf("failed to init llm client: %v", err)
		}
		svc.LLMClient = client
	}

	workflowCfg := c.Workflow.Value
	if workflowCfg == nil {
		workflowCfg = &workflowpkg.Config{}
	}
	svc.WorkflowConfig = workflowCfg

	if svc.LLMClient != nil && svc.Store != nil {
		dir := workflowCfg.PromptDir
		if dir == "" {
			dir = "prompts"
		}
		promptDir := confkit.ResolvePath(c.BaseDir(), dir)
		prompts, err := prompt.LoadLibrary(promptDir, nil)
		if err != nil {
			log.Fatalf("failed to load prompt library: %v", err)
		}
		svc.Prompts = prompts

		level := "info"
		if c.LLM.Value != nil && c.LLM.Value.LogLevel != "" {
			level = c.LLM.Value.LogLevel
		}
		parts, err := participant.NewAll(participant.Params{
			Client:   svc.LLMClient,
			Store:    svc.Store,
			Prompts:  prompts,
			MaxTurns: workflowCfg.MaxAgentTurns,
			Logger:   llmpkg.NewLogger(level),
		}, workflowCfg.StageModel)
		if err != nil {
			log.Fatalf("failed to build workflow participants: %v", err)
		}

		coordinator, err := workflowpkg.NewCoordinator(workflowCfg, parts)
		if err != nil {
			log.Fatalf("failed to build workflow coordinator: %v", err)
		}
		svc.Coordinator = coordinator
	}

	return svc
}

// Close releases the resources held by the context.
func (s *ServiceContext) Close() {
	if s.LLMClient != nil {
		s.LLMClient.Close()
	}
}
