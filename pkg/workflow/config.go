package workflow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"difflin-api/pkg/confkit"
)

// Config controls runtime behaviour of the workflow coordinator and its
// participants.
type Config struct {
	StageTimeout  time.Duration     `yaml:"-"`
	MaxAgentTurns int               `yaml:"max_agent_turns"`
	Concurrency   int               `yaml:"concurrency"`
	PromptDir     string            `yaml:"prompt_dir"`
	StageModels   map[string]string `yaml:"stage_models"`

	StageTimeoutRaw string `yaml:"stage_timeout"`
}

// Stage keys accepted in the stage_models map.
var stageKeys = map[string]struct{}{
	"inventory":   {},
	"quote":       {},
	"customer":    {},
	"fulfillment": {},
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workflow config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workflow config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal workflow config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	cfg.expandFields()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.StageTimeoutRaw) == "" {
		c.StageTimeoutRaw = "90s"
	}
	if c.MaxAgentTurns <= 0 {
		c.MaxAgentTurns = 8
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if strings.TrimSpace(c.PromptDir) == "" {
		c.PromptDir = "etc/prompts"
	}
}

func (c *Config) parseDurations() error {
	timeout, err := time.ParseDuration(c.StageTimeoutRaw)
	if err != nil {
		return fmt.Errorf("workflow config: invalid stage_timeout %q: %w", c.StageTimeoutRaw, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("workflow config: stage_timeout must be positive, got %s", timeout)
	}
	c.StageTimeout = timeout
	return nil
}

func (c *Config) expandFields() {
	c.PromptDir = strings.TrimSpace(os.ExpandEnv(c.PromptDir))
	for stage, model := range c.StageModels {
		c.StageModels[stage] = strings.TrimSpace(os.ExpandEnv(model))
	}
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.MaxAgentTurns <= 0 {
		return errors.New("workflow config: max_agent_turns must be positive")
	}
	if c.Concurrency <= 0 {
		return errors.New("workflow config: concurrency must be positive")
	}
	if strings.TrimSpace(c.PromptDir) == "" {
		return errors.New("workflow config: prompt_dir is required")
	}
	for stage := range c.StageModels {
		if _, ok := stageKeys[stage]; !ok {
			return fmt.Errorf("workflow config: unknown stage %q in stage_models", stage)
		}
	}
	return nil
}

// StageModel returns the model alias configured for a stage, or empty when the
// stage should use the LLM client default.
func (c *Config) StageModel(stage string) string {
	if c == nil || c.StageModels == nil {
		return ""
	}
	return c.StageModels[stage]
}
