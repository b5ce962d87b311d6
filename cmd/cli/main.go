package main

import (
	"fmt"
	"os"

	"cane-forecast/internal/assessment"
	"cane-forecast/internal/config"
	"cane-forecast/internal/data"
	"cane-forecast/internal/logging"
	"cane-forecast/internal/strategy"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cane",
		Short: "Sugar-cane loan delivery forecasts and grades",
		Long: `cane forecasts next-season sugar-cane delivery for loan orders and grades
the forecast against a contracted amount.

Input is a CSV with orderID, gender, contract and actual columns (asset is
optional). --data accepts a comma-separated list of files or directories.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			level := cfg.Logging.Level
			if a.verbose {
				level = "debug"
			}
			// Console logs go to stderr; stdout is reserved for results.
			logger, err := logging.New(level, "console")
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to YAML config (optional)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newPredictCmd(a),
		newGradesCmd(a),
		newRankCmd(a),
		newOrdersCmd(a),
		newTablesCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) loadData(paths string) (*data.Dataset, error) {
	ds, err := data.LoadFiles(data.SplitPaths(paths), a.cfg.LoadOptions())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dataset loaded",
		zap.String("dataset_id", ds.ID),
		zap.String("name", ds.Name),
		zap.Int("rows", ds.Rows),
		zap.Int("orders", ds.Len()),
		zap.Int("skipped_rows", ds.Skipped),
		zap.Bool("asset_synthesized", ds.AssetSynthesized))
	return ds, nil
}

// engine builds the configured engine, applying flag overrides.
func (a *app) engine(strategyName string, multiplier float64, tableName string) (*assessment.Engine, error) {
	strat, err := a.cfg.Strategy()
	if err != nil {
		return nil, err
	}
	if strategyName != "" {
		p := strategy.Params{Multiplier: a.cfg.Forecast.Multiplier}
		if multiplier > 0 {
			p.Multiplier = multiplier
		}
		if strat, err = strategy.ByName(strategyName, p); err != nil {
			return nil, err
		}
	}

	table, err := a.cfg.GradingTable()
	if err != nil {
		return nil, err
	}
	if tableName != "" {
		catalog, skipped, err := a.cfg.GradingCatalog()
		if err != nil {
			return nil, err
		}
		for path, err := range skipped {
			a.logger.Warn("grading table skipped", zap.String("file", path), zap.Error(err))
		}
		t, ok := catalog.Lookup(tableName)
		if !ok {
			return nil, fmt.Errorf("unknown grading table %q", tableName)
		}
		table = t
	}

	san, err := a.cfg.Sanitizer()
	if err != nil {
		return nil, err
	}
	return assessment.New(strat, table, san), nil
}
