package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_hydratesSections(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "llm.yaml"), `
base_url: ${ORDERDESK_TEST_BASE_URL}
api_key: test-key
default_model: gpt-test
timeout: 2s
`)
	writeFile(t, filepath.Join(dir, "workflow.yaml"), `
stage_timeout: 45s
max_agent_turns: 5
prompt_dir: prompts
stage_models:
  quote: gpt-test
`)
	mainPath := filepath.Join(dir, "orderdesk.yaml")
	writeFile(t, mainPath, `
Env: test
Postgres:
  DSN: postgres://localhost/difflin_test
Seed:
  Coverage: 0.5
Archive:
  Dir: archive
LLM:
  File: llm.yaml
Workflow:
  File: workflow.yaml
`)

	t.Setenv("ORDERDESK_TEST_BASE_URL", "https://llm.example/api")

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsTestEnv() {
		t.Fatalf("expected test env, got %q", cfg.Env)
	}
	if cfg.Postgres.DSN != "postgres://localhost/difflin_test" {
		t.Fatalf("Postgres.DSN got %q", cfg.Postgres.DSN)
	}
	if cfg.Seed.Seed != 137 || cfg.Seed.StartDate != "2025-01-01" {
		t.Fatalf("seed defaults not applied: %+v", cfg.Seed)
	}
	if cfg.Seed.Coverage != 0.5 {
		t.Fatalf("Seed.Coverage got %v", cfg.Seed.Coverage)
	}

	if cfg.LLM.Value == nil {
		t.Fatalf("LLM section not hydrated")
	}
	if got := cfg.LLM.Value.BaseURL; got != "https://llm.example/api" {
		t.Fatalf("LLM.BaseURL not expanded, got %q", got)
	}
	if cfg.Workflow.Value == nil {
		t.Fatalf("Workflow section not hydrated")
	}
	if got := cfg.Workflow.Value.StageTimeout.String(); got != "45s" {
		t.Fatalf("Workflow.StageTimeout got %s", got)
	}
	if got := cfg.Workflow.Value.StageModel("quote"); got != "gpt-test" {
		t.Fatalf("stage model got %q", got)
	}

	if cfg.BaseDir() != dir {
		t.Fatalf("BaseDir got %q want %q", cfg.BaseDir(), dir)
	}
}

func TestLoad_missingSectionsAreOptional(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "orderdesk.yaml")
	writeFile(t, mainPath, "Env: dev\n")

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Value != nil || cfg.Workflow.Value != nil {
		t.Fatalf("sections without files must stay empty")
	}
	if cfg.Archive.Dir != "archive" {
		t.Fatalf("Archive.Dir default got %q", cfg.Archive.Dir)
	}
}

func TestValidate_envBounds(t *testing.T) {
	cfg := &Config{Env: "staging"}
	cfg.Seed.Coverage = 0.4
	cfg.Archive.Dir = "archive"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected env validation error")
	}

	cfg.Env = "dev"
	cfg.Seed.Coverage = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected coverage validation error")
	}
}

func TestSeedPaths_resolveAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "orderdesk.yaml")
	writeFile(t, mainPath, `
Seed:
  QuotesFile: data/quotes.csv
  RequestsFile: data/quote_requests.csv
`)

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	supply, quotes, requests := cfg.SeedPaths()
	if supply != filepath.Join(dir, "data", "paper_supplies.json") {
		t.Fatalf("supply path got %q", supply)
	}
	if quotes != filepath.Join(dir, "data", "quotes.csv") {
		t.Fatalf("quotes path got %q", quotes)
	}
	if requests != filepath.Join(dir, "data", "quote_requests.csv") {
		t.Fatalf("requests path got %q", requests)
	}
}
