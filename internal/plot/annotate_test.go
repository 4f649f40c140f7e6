package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degviz/domain/gene"
)

func annotateTable(t *testing.T) *gene.Table {
	t.Helper()
	table := gene.NewTable([]string{gene.ColMI, gene.ColLog2FC})
	for _, r := range []gene.Record{
		{Symbol: "A", Values: map[string]float64{gene.ColMI: 0.5, gene.ColLog2FC: 1.2}},
		{Symbol: "B", Values: map[string]float64{gene.ColMI: 0.2, gene.ColLog2FC: -0.8}},
	} {
		require.NoError(t, table.Append(r))
	}
	return table
}

func TestAnnotateSkipsAbsentGenes(t *testing.T) {
	anchors := Annotate(annotateTable(t), []string{"A", "Z"}, gene.ColMI, gene.ColLog2FC)

	require.Len(t, anchors, 1)
	assert.Equal(t, "A", anchors[0].Text)
	assert.Equal(t, 0.5, anchors[0].X)
	assert.Equal(t, 1.2, anchors[0].Y)
	assert.True(t, anchors[0].ShowArrow)
	assert.Equal(t, 20, anchors[0].AX)
	assert.Equal(t, -20, anchors[0].AY)
}

func TestAnnotateEmptyIntersection(t *testing.T) {
	anchors := Annotate(annotateTable(t), []string{"X", "Y"}, gene.ColMI, gene.ColLog2FC)
	assert.Empty(t, anchors)
}

func TestAnnotateSkipsGenesMissingCoordinates(t *testing.T) {
	table := annotateTable(t)
	require.NoError(t, table.Append(gene.Record{Symbol: "C", Values: map[string]float64{gene.ColMI: 0.9}}))

	anchors := Annotate(table, []string{"C"}, gene.ColMI, gene.ColLog2FC)
	assert.Empty(t, anchors)
}

func TestAnnotateNilList(t *testing.T) {
	assert.Empty(t, Annotate(annotateTable(t), nil, gene.ColMI, gene.ColLog2FC))
}
