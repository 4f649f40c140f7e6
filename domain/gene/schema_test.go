package gene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"degviz/internal/errors"
)

func TestResolverCanonical(t *testing.T) {
	r := NewResolver("N6")

	tests := []struct {
		header string
		want   string
	}{
		{"avg_log2FC", "avg_log2FC"},
		{"avg_log2FC_N6", "avg_log2FC"},
		{"p_val_adj_N6", "p_val_adj"},
		{"p_val_adj_log10_N6", "p_val_adj_log10"},
		{"pct.1_N6", "pct.1"},
		{"pct_ratio_N6", "pct_ratio"},
		{"MI_with_condition", "MI_with_condition"},
		// MI and flags never carry the suffix; unknown tails pass through.
		{"is_mitocarta_N6", "is_mitocarta_N6"},
		{"Il10", "Il10"},
		{"random_col_N6", "random_col_N6"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, r.Canonical(tc.header), "header %s", tc.header)
	}
}

func TestResolverOtherSuffix(t *testing.T) {
	r := NewResolver("W2")
	assert.Equal(t, "avg_log2FC", r.Canonical("avg_log2FC_W2"))
	assert.Equal(t, "avg_log2FC_N6", r.Canonical("avg_log2FC_N6"))
}

func TestValidateReportsEveryMissingColumn(t *testing.T) {
	table := NewTable([]string{ColMI, ColLog2FC})

	err := Validate(table, RequiredColumns())
	require.Error(t, err)

	schemaErr, ok := errors.AsSchemaError(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{ColAdjP, ColAdjPLog10, ColMitoCarta, ColIl10, ColPctRatio}, schemaErr.Missing)
}

func TestValidatePasses(t *testing.T) {
	table := NewTable(RequiredColumns())
	assert.NoError(t, Validate(table, RequiredColumns()))
}
