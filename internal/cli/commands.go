package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/reactions"
	"github.com/zephyrtronium/reactions/internal/batch"
	"github.com/zephyrtronium/reactions/internal/observability"
	"github.com/zephyrtronium/reactions/internal/render"
	"github.com/zephyrtronium/reactions/internal/server"
)

func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [equation...]",
		Short: "Balance chemical equations",
		Long: `Balance each equation given as an argument or read from the input, one per
line. Results are written in input order.`,
		Example: `  reactions balance "H2 + O2 --> H2O"
  reactions balance -o table --in equations.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			log := observability.GetLogger()
			in, _ := cmd.Flags().GetString("in")
			eqs, err := inputs(args, in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if len(eqs) == 0 {
				return errors.New("no equations to balance")
			}
			b, err := newBalancer(cfg, log)
			if err != nil {
				return err
			}
			results, runErr := batch.Run(cmd.Context(), b, eqs, batch.Options{Workers: cfg.Batch.Workers, FailFast: cfg.Batch.FailFast})
			if err := render.Write(cmd.OutOrStdout(), outputFormat(cmd), results); err != nil {
				return err
			}
			if runErr != nil {
				log.Debug("balance failed", zap.Error(runErr))
				return fmt.Errorf("%d of %d equations failed", batch.Failed(results), len(results))
			}
			return nil
		},
	}
	cmd.Flags().String("in", "", "input file, one equation per line (default stdin if no args given)")
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [equation...]",
		Short: "Check whether equations are balanced as written",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			eqs, err := inputs(args, in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			bad := 0
			for _, eq := range eqs {
				status := "balanced"
				if !reactions.IsBalanced(eq) {
					status = "unbalanced"
					bad++
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", status, eq); err != nil {
					return err
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d equations are not balanced", bad, len(eqs))
			}
			return nil
		},
	}
	cmd.Flags().String("in", "", "input file, one equation per line (default stdin if no args given)")
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse [formula...]",
		Short:   "Parse chemical formulas and count their elements",
		Example: `  reactions parse "K4(Fe(CN)6)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			srcs, err := inputs(args, in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			for _, src := range srcs {
				f, err := reactions.ParseString(src)
				if err != nil {
					return fmt.Errorf("parsing %q: %w", src, err)
				}
				if err := render.Formula(cmd.OutOrStdout(), outputFormat(cmd), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("in", "", "input file, one formula per line (default stdin if no args given)")
	return cmd
}

func newEmpiricalCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "empirical element=moles...",
		Short:   "Find the empirical formula from relative amounts of elements",
		Example: `  reactions empirical C=2.5 H=5 O=2.5`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts := make([]reactions.Amount, 0, len(args))
			for _, arg := range args {
				a, err := parseAmount(arg)
				if err != nil {
					return err
				}
				amounts = append(amounts, a)
			}
			f, err := reactions.EmpiricalFormula(amounts)
			if err != nil {
				return err
			}
			return render.Formula(cmd.OutOrStdout(), outputFormat(cmd), f)
		},
	}
}

// parseAmount parses an element=moles argument.
func parseAmount(s string) (reactions.Amount, error) {
	el, m, ok := strings.Cut(s, "=")
	if !ok {
		return reactions.Amount{}, fmt.Errorf(`amounts must be "element=moles", not %q`, s)
	}
	moles, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return reactions.Amount{}, fmt.Errorf("amount of %s: %w", el, err)
	}
	return reactions.Amount{Element: strings.TrimSpace(el), Moles: moles}, nil
}

func newCombustCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "combust fuel...",
		Short:   "Balance the complete combustion of hydrocarbon fuels",
		Example: `  reactions combust CH4 C2H5OH`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			opts, err := balanceOptions(cfg.Balance, observability.GetLogger())
			if err != nil {
				return err
			}
			for _, fuel := range args {
				r, err := reactions.Combustion(fuel, opts...)
				if err != nil {
					return fmt.Errorf("combustion of %s: %w", fuel, err)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the balancing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}
			log := observability.GetLogger()
			b, err := newBalancer(cfg, log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg.Server, b, cfg.Batch.Workers, log).Serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "address to listen on (default from config)")
	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "reactions %s\n", version)
			return err
		},
	}
}
