package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdro-dev/wheelscreener/internal/market"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// screenCmd runs one screening pass from the command line
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run a one-shot wheel screening",
	Long: `Runs the screening pipeline once and prints the ranked results.

Example:
  go run ./cmd/wheelscreener screen
  go run ./cmd/wheelscreener screen --min-score 60 --sector Technology
  go run ./cmd/wheelscreener screen --json`,
	RunE: runScreen,
}

var (
	screenMinPrice  float64
	screenMaxPrice  float64
	screenMinVolume int64
	screenMinROIC   float64
	screenMinScore  int
	screenSectors   []string
	screenJSON      bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().Float64Var(&screenMinPrice, "min-price", market.DefaultMinPrice, "minimum price")
	screenCmd.Flags().Float64Var(&screenMaxPrice, "max-price", market.DefaultMaxPrice, "maximum price")
	screenCmd.Flags().Int64Var(&screenMinVolume, "min-volume", market.DefaultMinVolume, "minimum daily volume")
	screenCmd.Flags().Float64Var(&screenMinROIC, "min-roic", market.DefaultMinROIC, "minimum ROIC percent")
	screenCmd.Flags().IntVar(&screenMinScore, "min-score", market.DefaultMinScore, "minimum composite score")
	screenCmd.Flags().StringSliceVar(&screenSectors, "sector", nil, "sector filter, repeatable")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print raw JSON instead of a table")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)

	d, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	criteria := &market.FilterCriteria{
		MinPrice:  &screenMinPrice,
		MaxPrice:  &screenMaxPrice,
		MinVolume: &screenMinVolume,
		MinROIC:   &screenMinROIC,
		MinScore:  &screenMinScore,
		Sectors:   screenSectors,
	}

	response, err := d.orchestrator.Screen(ctx, criteria)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	fmt.Printf("Matched %d of %d instruments in %s\n\n", response.Total, d.universe.Len(), response.ExecutionTime)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tSECTOR\tPRICE\tSCORE\tVOLATILITY\tSUITABILITY\tSOURCE")
	for _, res := range response.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%.3f\t%d\t%s\n",
			res.Symbol, res.Name, res.Sector, res.Price, res.Score,
			res.Volatility, res.WheelMetrics.WheelSuitability, res.Provenance)
	}
	return w.Flush()
}
