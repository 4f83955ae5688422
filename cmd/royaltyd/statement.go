package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kushtunes/royalty/internal/config"
	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/models"
	"github.com/kushtunes/royalty/internal/statement"
	"github.com/kushtunes/royalty/internal/storage/sqlite"
)

var (
	stmtArtist string
	stmtPeriod string
	stmtFormat string
	stmtOut    string
)

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Export a per-period royalty statement for an artist",
	RunE:  runStatement,
}

func init() {
	statementCmd.Flags().StringVar(&stmtArtist, "artist", "", "artist ID (required)")
	statementCmd.Flags().StringVar(&stmtPeriod, "period", "", "settlement period, YYYY-MM (required)")
	statementCmd.Flags().StringVar(&stmtFormat, "format", "csv", "output format: csv or text")
	statementCmd.Flags().StringVar(&stmtOut, "out", "-", "output file, - for stdout")
	statementCmd.MarkFlagRequired("artist")
	statementCmd.MarkFlagRequired("period")
	rootCmd.AddCommand(statementCmd)
}

func runStatement(cmd *cobra.Command, args []string) error {
	if !models.ValidPeriod(stmtPeriod) {
		return fmt.Errorf("period %q must match YYYY-MM", stmtPeriod)
	}
	if stmtFormat != "csv" && stmtFormat != "text" {
		return fmt.Errorf("format must be csv or text")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	st, err := statement.Build(cmd.Context(), store, currency.NewConverter(cfg.CurrencyRates), stmtArtist, stmtPeriod)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if stmtOut != "-" {
		f, err := os.Create(stmtOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if stmtFormat == "text" {
		return statement.WriteText(out, st)
	}
	return statement.WriteCSV(out, st)
}
