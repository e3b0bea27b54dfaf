package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leagueops/rosterd/app"
	"github.com/leagueops/rosterd/config"
	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/core/report"
	"github.com/leagueops/rosterd/infra/logger"
	"github.com/leagueops/rosterd/internal/rosterfile"
	"github.com/leagueops/rosterd/pkg/export"
)

var (
	rosterPath   string
	outputPath   string
	outputFormat string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Compute division and team assignments for a roster",
	RunE:  runBalance,
}

func init() {
	balanceCmd.Flags().StringVarP(&rosterPath, "roster", "r", "", "roster file (yaml)")
	balanceCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, defaults to stdout")
	balanceCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: json or csv")
	_ = balanceCmd.MarkFlagRequired("roster")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logg := logger.New("balance-command")

	svc, res, err := computeRoster(cfg, rosterPath, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	logReports(logg, res)
	return writeResult(cfg, res)
}

func computeRoster(cfg *config.Config, path string, logg logger.Logger) (*app.Service, *balance.Result, error) {
	roster, err := rosterfile.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}
	candidates, divisions, err := roster.Models()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid roster: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc.SetRoster(candidates, divisions)
	res := svc.Result()
	if res.Empty() {
		logg.Warnf("%v", balance.ErrNothingToPlace)
	}
	return svc, res, nil
}

func logReports(logg logger.Logger, res *balance.Result) {
	for _, r := range report.Build(res) {
		logg.Infof("%s: %d players on %d teams, spread %.1f (stddev %.2f)",
			r.DivisionName, r.Players, r.Teams, r.ScoreSpread, r.ScoreStdDev)
	}
}

func writeResult(cfg *config.Config, res *balance.Result) error {
	format := cfg.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	path := cfg.Output.Path
	if outputPath != "" {
		path = outputPath
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, res.Assignments)
	default:
		return export.WriteJSON(w, res.Assignments)
	}
}
