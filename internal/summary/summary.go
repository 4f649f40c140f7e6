package summary

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"degviz/domain/gene"
)

// Stats summarizes one filter pass: overall and filtered row counts,
// reference-set membership, and central tendencies of the key columns.
type Stats struct {
	TotalGenes     int     `json:"total_genes"`
	FilteredGenes  int     `json:"filtered_genes"`
	MitoCartaCount int     `json:"mitocarta_count"`
	MitoCartaPct   float64 `json:"mitocarta_pct"`
	MeanMI         float64 `json:"mean_mi"`
	MeanLog2FC     float64 `json:"mean_log2fc"`
	MedianAdjP     float64 `json:"median_adj_p"`
}

// Compute builds the summary for a filtered table against its source.
// The median runs over substituted adjusted p-values so genes without a
// p-value count as least significant, matching the filter.
func Compute(full, filtered *gene.Table) Stats {
	s := Stats{
		TotalGenes:    full.Len(),
		FilteredGenes: filtered.Len(),
	}

	adjP := make([]float64, 0, filtered.Len())
	for _, r := range filtered.Records() {
		if r.Flag(gene.ColMitoCarta) {
			s.MitoCartaCount++
		}
		adjP = append(adjP, r.AdjP())
	}
	if filtered.Len() > 0 {
		s.MitoCartaPct = 100 * float64(s.MitoCartaCount) / float64(filtered.Len())
	}

	// montanaflynn returns NaN with an error on empty input; zero is
	// the right display value there and keeps the JSON encodable.
	s.MeanMI = meanOrZero(filtered.Column(gene.ColMI))
	s.MeanLog2FC = meanOrZero(filtered.Column(gene.ColLog2FC))
	if median, err := stats.Median(adjP); err == nil {
		s.MedianAdjP = median
	}
	return s
}

func meanOrZero(values []float64) float64 {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

// Range is a column's observed bounds, feeding the threshold slider
// limits in the UI.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ColumnRange returns the min/max of a column over the table, or false
// when the column has no values.
func ColumnRange(t *gene.Table, col string) (Range, bool) {
	values := t.Column(col)
	if len(values) == 0 {
		return Range{}, false
	}
	return Range{Min: floats.Min(values), Max: floats.Max(values)}, true
}
