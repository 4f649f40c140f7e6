package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degviz/domain/gene"
)

func buildTable(t *testing.T, records ...gene.Record) *gene.Table {
	t.Helper()
	table := gene.NewTable([]string{gene.ColMI, gene.ColLog2FC, gene.ColAdjP, gene.ColMitoCarta})
	for _, r := range records {
		require.NoError(t, table.Append(r))
	}
	return table
}

func TestCompute(t *testing.T) {
	full := buildTable(t,
		gene.Record{Symbol: "A", Values: map[string]float64{gene.ColMI: 0.5, gene.ColLog2FC: 1.0, gene.ColAdjP: 0.01, gene.ColMitoCarta: 1}},
		gene.Record{Symbol: "B", Values: map[string]float64{gene.ColMI: 0.3, gene.ColLog2FC: -1.0, gene.ColAdjP: 0.05, gene.ColMitoCarta: 0}},
		gene.Record{Symbol: "C", Values: map[string]float64{gene.ColMI: 0.1, gene.ColLog2FC: 0.2, gene.ColAdjP: 0.9}},
	)
	filtered := full.Subset(full.Records()[:2])

	s := Compute(full, filtered)
	assert.Equal(t, 3, s.TotalGenes)
	assert.Equal(t, 2, s.FilteredGenes)
	assert.Equal(t, 1, s.MitoCartaCount)
	assert.InDelta(t, 50.0, s.MitoCartaPct, 1e-9)
	assert.InDelta(t, 0.4, s.MeanMI, 1e-9)
	assert.InDelta(t, 0.0, s.MeanLog2FC, 1e-9)
	assert.InDelta(t, 0.03, s.MedianAdjP, 1e-9)
}

func TestComputeMissingAdjPCountsAsOne(t *testing.T) {
	full := buildTable(t,
		gene.Record{Symbol: "A", Values: map[string]float64{gene.ColMI: 0.5, gene.ColAdjP: 0.2}},
		gene.Record{Symbol: "B", Values: map[string]float64{gene.ColMI: 0.3}},
	)

	s := Compute(full, full)
	assert.InDelta(t, 0.6, s.MedianAdjP, 1e-9)
}

func TestComputeEmptyFilteredSet(t *testing.T) {
	full := buildTable(t,
		gene.Record{Symbol: "A", Values: map[string]float64{gene.ColMI: 0.5}},
	)
	filtered := full.Subset(nil)

	s := Compute(full, filtered)
	assert.Equal(t, 1, s.TotalGenes)
	assert.Equal(t, 0, s.FilteredGenes)
	assert.Zero(t, s.MitoCartaPct)
	assert.Zero(t, s.MeanMI)
	assert.Zero(t, s.MedianAdjP)
}

func TestColumnRange(t *testing.T) {
	full := buildTable(t,
		gene.Record{Symbol: "A", Values: map[string]float64{gene.ColMI: 0.5}},
		gene.Record{Symbol: "B", Values: map[string]float64{gene.ColMI: 0.1}},
		gene.Record{Symbol: "C", Values: map[string]float64{}},
	)

	r, ok := ColumnRange(full, gene.ColMI)
	require.True(t, ok)
	assert.Equal(t, 0.1, r.Min)
	assert.Equal(t, 0.5, r.Max)

	_, ok = ColumnRange(full, gene.ColLog2FC)
	assert.False(t, ok)
}
