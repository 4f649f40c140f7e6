package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degviz/domain/gene"
)

func plotTable(t *testing.T, columns []string, records ...gene.Record) *gene.Table {
	t.Helper()
	table := gene.NewTable(columns)
	for _, r := range records {
		require.NoError(t, table.Append(r))
	}
	return table
}

func fullColumns() []string {
	return []string{
		gene.ColMI, gene.ColLog2FC, gene.ColAdjP, gene.ColAdjPLog10,
		gene.ColMitoCarta, gene.ColIl10, gene.ColIl6,
		gene.ColPctRatio, gene.ColPct1, gene.ColPct2,
	}
}

func record(symbol string, mito float64) gene.Record {
	return gene.Record{Symbol: symbol, Values: map[string]float64{
		gene.ColMI:        0.4,
		gene.ColLog2FC:    1.1,
		gene.ColAdjP:      0.02,
		gene.ColAdjPLog10: 1.7,
		gene.ColMitoCarta: mito,
		gene.ColIl10:      3.2,
		gene.ColIl6:       0.8,
		gene.ColPctRatio:  1.5,
		gene.ColPct1:      0.6,
		gene.ColPct2:      0.4,
	}}
}

func TestMitoCartaScatterCategories(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 1), record("B", 0))

	spec := MitoCartaScatter(table, nil)
	assert.Equal(t, ColorDiscrete, spec.Mode)
	assert.Equal(t, map[string]string{"Other": "blue", gene.ColMitoCarta: "red"}, spec.ColorMap)
	require.Len(t, spec.Points, 2)
	assert.Equal(t, gene.ColMitoCarta, spec.Points[0].Category)
	assert.Equal(t, CategoryOther, spec.Points[1].Category)
	assert.Contains(t, spec.Title, "(n=2)")
}

func TestHighlightFallsBackWhenColumnAbsent(t *testing.T) {
	cols := []string{gene.ColMI, gene.ColLog2FC}
	table := plotTable(t, cols, gene.Record{Symbol: "A", Values: map[string]float64{
		gene.ColMI: 0.4, gene.ColLog2FC: 1.1,
	}})

	spec := HighlightScatter(table, "highlight", gene.ColMI, gene.ColLog2FC, "is_upregulated", nil)
	require.Len(t, spec.Points, 1)
	assert.Equal(t, CategoryOther, spec.Points[0].Category)
}

func TestContinuousFallsBackWhenColorAbsent(t *testing.T) {
	cols := []string{gene.ColLog2FC, gene.ColAdjPLog10}
	table := plotTable(t, cols, gene.Record{Symbol: "A", Values: map[string]float64{
		gene.ColLog2FC: 1.1, gene.ColAdjPLog10: 1.7,
	}})

	spec := VolcanoIl10(table)
	assert.Equal(t, ColorDiscrete, spec.Mode)
	assert.Equal(t, map[string]string{"Other": "blue"}, spec.ColorMap)
	require.Len(t, spec.Points, 1)
	assert.Equal(t, CategoryOther, spec.Points[0].Category)
}

func TestVolcanoMinPctDerivesPerRow(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 0))

	spec := VolcanoMinPct(table)
	assert.Equal(t, ColorContinuous, spec.Mode)
	assert.Equal(t, gene.ColMinPct, spec.ColorColumn)
	require.Len(t, spec.Points, 1)
	assert.Equal(t, 0.4, spec.Points[0].Value) // min(0.6, 0.4)
}

func TestVolcanoMIAxesAndColor(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 0))

	spec := VolcanoMI(table)
	assert.Equal(t, gene.ColLog2FC, spec.XColumn)
	assert.Equal(t, gene.ColAdjPLog10, spec.YColumn)
	assert.Equal(t, "Average log2 Fold Change", spec.XTitle)
	assert.Equal(t, "-log10(adjusted p-value)", spec.YTitle)
	assert.Equal(t, "Sunset", spec.ColorScale)
	assert.Equal(t, 0.4, spec.Points[0].Value)
}

func TestHoverFieldsAttached(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 1))

	spec := MitoCartaScatter(table, nil)
	hover := spec.Points[0].Hover
	for _, col := range []string{gene.ColAdjP, gene.ColIl10, gene.ColIl6, gene.ColPctRatio, gene.ColPct1, gene.ColPct2} {
		assert.Contains(t, hover, col)
	}
}

func TestBuildAllVariants(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 1))

	specs := BuildAll(table, Request{ShowAnnotations: true})
	require.Len(t, specs, 6)
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"mitocarta", "pct_ratio", "volcano_mi", "volcano_il10", "volcano_min_pct", "highlight"}, names)
}

func TestBuildAllEmptyTable(t *testing.T) {
	table := gene.NewTable(fullColumns())
	specs := BuildAll(table, Request{ShowAnnotations: true})
	require.Len(t, specs, 6)
	for _, s := range specs {
		assert.Empty(t, s.Points)
		assert.Contains(t, s.Title, "(n=0)")
	}
}

func TestBuildAllSuppressesAnnotations(t *testing.T) {
	table := plotTable(t, fullColumns(), record("A", 1))

	specs := BuildAll(table, Request{Annotate: []string{"A"}, ShowAnnotations: false})
	for _, s := range specs {
		assert.Empty(t, s.Annotations, "variant %s", s.Name)
	}

	specs = BuildAll(table, Request{Annotate: []string{"A"}, ShowAnnotations: true})
	assert.NotEmpty(t, specs[0].Annotations)
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"pct_ratio":    "Pct Ratio",
		"pct.1":        "Pct 1",
		"Il10":         "Il10",
		"is_mitocarta": "Is Mitocarta",
	}
	for in, want := range tests {
		assert.Equal(t, want, AxisTitle(in))
	}
	// Known columns use their established labels instead.
	assert.Equal(t, "Mutual Information (condition)", AxisTitle(gene.ColMI))
}
