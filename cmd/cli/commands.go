package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"cane-forecast/internal/analysis"
	"cane-forecast/internal/assessment"
	"cane-forecast/internal/grading"
	"cane-forecast/internal/strategy"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type engineFlags struct {
	strategy   string
	multiplier float64
	table      string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "strategy", "", fmt.Sprintf("Forecast strategy %v (default: configured)", strategy.Names()))
	cmd.Flags().Float64Var(&f.multiplier, "multiplier", 0, "Multiplier for fixed-multiplier (default: configured)")
	cmd.Flags().StringVar(&f.table, "table", "", "Grading table name (default: configured)")
}

func newPredictCmd(a *app) *cobra.Command {
	var (
		dataPath string
		orderID  string
		contract float64
		explain  bool
		outPath  string
		ef       engineFlags
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Forecast next-season delivery for one order and grade it",
		Example: `  cane predict --data loans.csv --order g000001 --contract 120
  cane predict --data loans.csv --order g000001 --contract 120 --strategy fixed-multiplier --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadData(dataPath)
			if err != nil {
				return err
			}
			engine, err := a.engine(ef.strategy, ef.multiplier, ef.table)
			if err != nil {
				return err
			}
			p, err := engine.Predict(ds, assessment.PredictRequest{
				OrderID:        orderID,
				ContractAmount: contract,
				Explain:        explain,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("prediction",
				zap.String("order_id", p.OrderID),
				zap.String("strategy", p.Forecast.Strategy),
				zap.Float64("predicted", p.Forecast.Predicted))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %s (%s)", p.OrderID, p.Sex)
			if p.Sanitized {
				fmt.Fprint(out, " [history sanitized]")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Strategy: %s\n", p.Forecast.Strategy)
			if len(p.Forecast.Changes) > 0 {
				fmt.Fprintf(out, "Average change: %s%%\n", grading.FormatPercent(p.Forecast.AverageChange))
			}
			fmt.Fprintf(out, "Predicted delivery: %.2f (contract %.2f)\n", p.Forecast.Predicted, contract)
			fmt.Fprintf(out, "Grade: %s (%s%%, %s)\n", p.Assessment.Grade, grading.FormatPercent(p.Assessment.Percentage), p.Assessment.Band)
			if p.Assessment.Reason != "" {
				fmt.Fprintln(out, p.Assessment.Reason)
			}
			fmt.Fprintln(out)
			if err := printPeriods(out, p.Periods); err != nil {
				return err
			}
			return writeCSV(out, outPath, p.Periods)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV path(s) or directory")
	cmd.Flags().StringVar(&orderID, "order", "", "Order ID")
	cmd.Flags().Float64Var(&contract, "contract", 0, "Contract amount to grade against")
	cmd.Flags().BoolVar(&explain, "explain", false, "Explain every grade")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional path to write the period table as CSV")
	ef.register(cmd)
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("contract")
	return cmd
}

func newGradesCmd(a *app) *cobra.Command {
	var (
		dataPath string
		orderID  string
		explain  bool
		outPath  string
		table    string
	)
	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Grade every historical season of one order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadData(dataPath)
			if err != nil {
				return err
			}
			engine, err := a.engine("", 0, table)
			if err != nil {
				return err
			}
			ov, err := engine.Overview(ds, orderID, explain)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %s (%s), table %s\n\n", ov.OrderID, ov.Sex, engine.Table.Name)
			if err := printPeriods(out, ov.Periods); err != nil {
				return err
			}
			if explain {
				fmt.Fprintln(out)
				for _, r := range ov.Periods {
					if r.Reason != "" {
						fmt.Fprintf(out, "%s: %s\n", r.Label, r.Reason)
					}
				}
			}
			return writeCSV(out, outPath, ov.Periods)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV path(s) or directory")
	cmd.Flags().StringVar(&orderID, "order", "", "Order ID")
	cmd.Flags().BoolVar(&explain, "explain", false, "Explain every grade")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional path to write the period table as CSV")
	cmd.Flags().StringVar(&table, "table", "", "Grading table name (default: configured)")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func newRankCmd(a *app) *cobra.Command {
	var (
		dataPath string
		limit    int
		ef       engineFlags
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank every order by forecast against its last contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadData(dataPath)
			if err != nil {
				return err
			}
			engine, err := a.engine(ef.strategy, ef.multiplier, ef.table)
			if err != nil {
				return err
			}
			ranked := analysis.RankOrders(ds, engine)
			s := analysis.Summarize(ranked)
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "rank\torder\tperiods\ttarget\tpredicted\tpct\tgrade\tnote")
			for i, r := range ranked {
				if r.Err != nil {
					fmt.Fprintf(tw, "-\t%s\t%d\t%.2f\t\t\t\t%v\n", r.OrderID, r.Periods, r.Target, r.Err)
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\t%s\t%s\t\n",
					i+1, r.OrderID, r.Periods, r.Target, r.Forecast.Predicted,
					grading.FormatPercent(r.Assessment.Percentage), r.Assessment.Grade)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d orders, %d assessed, %d failed (strategy %s, table %s)\n",
				s.Orders, s.Assessed, s.Failed, engine.Strategy.Name(), engine.Table.Name)
			if s.Assessed > 0 {
				fmt.Fprintf(out, "pct min/mean/max: %s / %s / %s\n",
					grading.FormatPercent(s.MinPct), grading.FormatPercent(s.MeanPct), grading.FormatPercent(s.MaxPct))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV path(s) or directory")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the first N rows (0=all)")
	ef.register(cmd)
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newOrdersCmd(a *app) *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the order IDs in a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadData(dataPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ds.Orders() {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV path(s) or directory")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Show the available grading tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, skipped, err := a.cfg.GradingCatalog()
			if err != nil {
				return err
			}
			for path, err := range skipped {
				a.logger.Warn("grading table skipped", zap.String("file", path), zap.Error(err))
			}

			out := cmd.OutOrStdout()
			for i, t := range catalog.Tables() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				marker := ""
				if i == 0 {
					marker = " (active)"
				}
				fmt.Fprintf(out, "%s%s\n", t.Name, marker)
				for _, b := range t.Bands {
					fmt.Fprintf(out, "  %-3s >= %6.2f%%  %s\n", b.Grade, b.Min, b.Label)
				}
			}
			return nil
		},
	}
}

func printPeriods(out io.Writer, rows []assessment.PeriodRow) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "season\tcontract\tactual\tpct\tgrade\tnote")
	for _, r := range rows {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\t\t%s\n", r.Label, fmtQty(r.Contract), fmtQty(r.Actual), r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Label, fmtQty(r.Contract), fmtQty(r.Actual),
			grading.FormatPercent(r.Percentage), r.Grade)
	}
	return tw.Flush()
}

func writeCSV(out io.Writer, path string, rows []assessment.PeriodRow) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := assessment.WritePeriodsCSV(path, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nWrote %d rows to %s\n", len(rows), path)
	return nil
}

func fmtQty(x float64) string {
	if math.IsNaN(x) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", x)
}
