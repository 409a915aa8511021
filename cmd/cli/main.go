// Package main provides the partnerscope CLI. Cobra builds the command
// tree:
//
//	pscope partners "Oracle"
//	pscope trading "Oracle, Microsoft, Tesla"
//	pscope metrics MSFT
//	pscope analyze "Oracle"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcastano/partnerscope/internal/app"
	"github.com/dcastano/partnerscope/internal/config"
	"github.com/dcastano/partnerscope/internal/model"
)

// errToolFailed signals a tool error envelope that was already printed.
// It propagates up through runTool so deferred cleanup runs before the
// process exits non-zero.
var errToolFailed = errors.New("tool reported an error")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pscope",
		Short:         "Partner and trading-status analysis tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		toolCmd("partners <company>", "Find contracted companies and partners via LLM web search", "find_contracted_companies", "company_name"),
		toolCmd("trading <companies>", "Check whether companies are publicly traded (comma-separated list)", "check_public_trading_status", "company_names"),
		toolCmd("metrics <ticker>", "Fetch financial metrics for a ticker", "get_company_financial_metrics", "ticker"),
		toolCmd("analyze <company>", "Run the full partner analysis pipeline", "analyze_company", "company_name"),
	)
	return root
}

// toolCmd builds a cobra command that dispatches one registry tool with
// a single positional argument.
func toolCmd(use, short, tool, argName string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(tool, map[string]string{argName: args[0]}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result envelope as JSON")
	return cmd
}

func runTool(tool string, args map[string]string, asJSON bool) error {
	cfg, err := config.Load(os.Getenv("PSCOPE_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The CLI always logs human-readable.
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Ctrl+C cancels the in-flight provider calls.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	env, err := application.Deps.Registry.Dispatch(ctx, tool, args)
	if err != nil {
		return err
	}

	return printEnvelope(env, asJSON)
}

func printEnvelope(env *model.Envelope, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding envelope: %w", err)
		}
		fmt.Println(string(out))
		if !env.OK() {
			return errToolFailed
		}
		return nil
	}

	if !env.OK() {
		return fmt.Errorf("%s", env.ErrorMessage)
	}
	fmt.Println(env.Report)
	return nil
}
