package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"difflin-api/internal/cli"
	"difflin-api/internal/config"
	"difflin-api/internal/svc"
	"difflin-api/pkg/confkit"
)

var (
	cfgFile string
	cfg     *config.Config
	svcCtx  *svc.ServiceContext
)

func Execute() error {
	root := &cobra.Command{
		Use:          "orderdesk",
		Short:        "Paper supply order desk driven by LLM participants",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile = resolveConfigPath(cfgFile)
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			if cfg.Log.ServiceName != "" || cfg.Log.Mode != "" {
				logx.MustSetup(cfg.Log)
			}
			cli.LogConfigSummary(cfg)
			svcCtx = svc.NewServiceContext(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if svcCtx != nil {
				svcCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "f", "etc/orderdesk.yaml", "the config file")
	root.AddCommand(initCmd(), runCmd(), reportCmd())
	return root.Execute()
}

// resolveConfigPath falls back to the repository root when a relative config
// path does not exist under the current working directory.
func resolveConfigPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if rooted, err := confkit.ProjectPath(path); err == nil {
		if _, err := os.Stat(rooted); err == nil {
			return rooted
		}
	}
	return path
}
