package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"degviz/adapters/excel"
	"degviz/domain/gene"
	"degviz/internal/filter"
	"degviz/internal/plot"
	"degviz/internal/summary"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "degviz-cli",
		Short: "Offline runner for the DEG vs MI visualizer",
	}

	rootCmd.AddCommand(
		newRenderCmd(),
		newInspectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRenderCmd() *cobra.Command {
	var (
		outDir          string
		miMin           float64
		pvalMax         float64
		regulation      string
		highlight       string
		annotate        []string
		conditionSuffix string
	)

	cmd := &cobra.Command{
		Use:   "render [workbook]",
		Short: "Filter a workbook and write chart specs as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0], conditionSuffix)
			if err != nil {
				return err
			}

			reg, err := filter.ParseRegulation(regulation)
			if err != nil {
				return err
			}
			params := filter.Params{MIMin: miMin, PValMax: pvalMax, Regulation: reg}
			filtered := filter.Apply(table, params)

			req := plot.Request{
				Highlight:       highlight,
				Annotate:        annotate,
				ShowAnnotations: len(annotate) > 0,
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for _, spec := range plot.BuildAll(filtered, req) {
				path := filepath.Join(outDir, spec.Name+".json")
				data, err := json.MarshalIndent(spec, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				fmt.Printf("wrote %s (%d points)\n", path, len(spec.Points))
			}

			printSummary(summary.Compute(table, filtered))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "charts", "output directory for chart spec JSON")
	cmd.Flags().Float64Var(&miMin, "mi-min", 0, "inclusive minimum MI score")
	cmd.Flags().Float64Var(&pvalMax, "pval-max", 1.0, "inclusive maximum adjusted p-value")
	cmd.Flags().StringVar(&regulation, "regulation", "both", "regulation direction: both, up, down")
	cmd.Flags().StringVar(&highlight, "highlight", "", "binary column for the custom highlight scatter")
	cmd.Flags().StringSliceVar(&annotate, "annotate", nil, "gene symbols to label on the highlight charts")
	cmd.Flags().StringVar(&conditionSuffix, "condition-suffix", "N6", "condition qualifier stripped from suffixed column names")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var conditionSuffix string

	cmd := &cobra.Command{
		Use:   "inspect [workbook]",
		Short: "Print resolved columns and value ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0], conditionSuffix)
			if err != nil {
				return err
			}

			fmt.Printf("genes: %d\n", table.Len())
			for _, col := range table.Columns() {
				if r, ok := summary.ColumnRange(table, col); ok {
					fmt.Printf("  %-24s [%g, %g]\n", col, r.Min, r.Max)
				} else {
					fmt.Printf("  %-24s (no numeric values)\n", col)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&conditionSuffix, "condition-suffix", "N6", "condition qualifier stripped from suffixed column names")
	return cmd
}

func loadTable(path, conditionSuffix string) (*gene.Table, error) {
	reader := excel.NewDataReader(gene.NewResolver(conditionSuffix))
	table, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := gene.Validate(table, gene.RequiredColumns()); err != nil {
		return nil, err
	}
	return table, nil
}

func printSummary(s summary.Stats) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("total genes:     %d\n", s.TotalGenes)
	fmt.Printf("filtered genes:  %d\n", s.FilteredGenes)
	fmt.Printf("mitocarta:       %d (%.1f%%)\n", s.MitoCartaCount, s.MitoCartaPct)
	fmt.Printf("mean MI:         %.4f\n", s.MeanMI)
	fmt.Printf("mean log2FC:     %.3f\n", s.MeanLog2FC)
	fmt.Printf("median adj p:    %.3g\n", s.MedianAdjP)
}
