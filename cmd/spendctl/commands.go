package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smartspend/internal/assistant"
	"smartspend/internal/category"
)

func categorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <description>",
		Short: "Categorize an expense description",
		Example: `  spendctl categorize "Dinner at restaurant"
  spendctl categorize --json Uber to the airport`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := builder()
			if err != nil {
				return err
			}
			defer deps.Close()

			res, err := deps.Assistant.Categorize(cmd.Context(), assistant.ExpenseRequest{Description: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", res.Category, res.Message)
			return err
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a personal finance question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := builder()
			if err != nil {
				return err
			}
			defer deps.Close()

			res, err := deps.Assistant.Query(cmd.Context(), assistant.QueryRequest{Query: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Response)
			return err
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the supported expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if viper.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), category.All())
			}
			for _, c := range category.All() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", c, c.Message()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
