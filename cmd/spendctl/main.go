// Command spendctl categorizes expenses and answers finance questions from
// the terminal using the same assistant as the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smartspend/internal/app"
	"smartspend/internal/config"
	"smartspend/internal/logger"
)

// builder is swapped in tests.
var builder = func() (app.Deps, error) {
	if err := app.LoadEnv(); err != nil {
		return app.Deps{}, err
	}
	cfg := config.Load()
	return app.BuildWith(cfg, logger.NewTo(os.Stderr, viper.GetString("log_level")))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spendctl",
		Short:         "Categorize expenses and ask budgeting questions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "print results as JSON")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(categorizeCmd())
	root.AddCommand(askCmd())
	root.AddCommand(categoriesCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
