// Package cli provides the command-line interface for reactions.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zephyrtronium/reactions"
	"github.com/zephyrtronium/reactions/internal/config"
	"github.com/zephyrtronium/reactions/internal/observability"
	"github.com/zephyrtronium/reactions/internal/render"
)

// Version is the version of the command, set at build time.
var Version = "dev"

// configKey is used to store the config in the command context.
type configKey struct{}

// flagKeys maps persistent flags to the settings they override.
var flagKeys = map[string]string{
	"method":    "balance.method",
	"workers":   "batch.workers",
	"fail-fast": "batch.fail_fast",
	"log-level": "logger.level",
	"cache":     "cache.size",
}

// NewRootCmd creates the root command.
func NewRootCmd(version string) *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "reactions",
		Short: "Balance chemical equations",
		Long: `reactions parses chemical formulas and balances chemical equations.

Equations are written as reactants and products separated by "-->", with
compounds on each side separated by "+", e.g. "H2 + O2 --> H2O".`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			v := viper.New()
			for name, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
					return fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			if f := v.ConfigFileUsed(); f != "" {
				observability.GetLogger().Debug("using config file", zap.String("file", f))
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			observability.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./reactions.yaml)")
	pf.StringP("output", "o", render.Text, "output format (text|table|json|yaml)")
	pf.String("method", "", "balancing method (algebraic|matrix)")
	pf.Int("workers", 0, "maximum equations balanced at once")
	pf.Bool("fail-fast", false, "stop at the first equation that fails")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.Int("cache", 0, "number of balanced equations to remember")

	_ = root.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("method", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{reactions.MethodAlgebraic.String(), reactions.MethodMatrix.String()}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newBalanceCmd(),
		newCheckCmd(),
		newParseCmd(),
		newEmpiricalCmd(),
		newCombustCmd(),
		newServeCmd(),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd(Version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return c
	}
	v := viper.New()
	config.SetDefaults(v)
	var cfg config.Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

// balanceOptions converts balancing settings to options.
func balanceOptions(cfg config.BalanceConfig, log *zap.Logger) ([]reactions.BalanceOption, error) {
	m, ok := reactions.ParseMethod(cfg.Method)
	if !ok {
		return nil, fmt.Errorf("unknown balancing method %q", cfg.Method)
	}
	opts := []reactions.BalanceOption{m}
	if !cfg.Substitution {
		opts = append(opts, reactions.NoSubstitution())
	}
	if cfg.Trace {
		opts = append(opts, reactions.Trace(log))
	}
	return opts, nil
}

// newBalancer creates the memoizing balancer described by cfg.
func newBalancer(cfg *config.Config, log *zap.Logger) (*reactions.Balancer, error) {
	opts, err := balanceOptions(cfg.Balance, log)
	if err != nil {
		return nil, err
	}
	return reactions.NewBalancer(cfg.Cache.Size, opts...)
}
