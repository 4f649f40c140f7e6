package gene

import (
	"degviz/internal/errors"
)

// Canonical column names. The base naming convention is authoritative;
// the condition-suffixed convention resolves onto these via Resolver.
const (
	ColMI        = "MI_with_condition"
	ColLog2FC    = "avg_log2FC"
	ColAdjP      = "p_val_adj"
	ColAdjPLog10 = "p_val_adj_log10"
	ColPct1      = "pct.1"
	ColPct2      = "pct.2"
	ColPctRatio  = "pct_ratio"
	ColMitoCarta = "is_mitocarta"
	ColIl10      = "Il10"
	ColIl6       = "Il6"
	ColUp        = "is_upregulated"
	ColDown      = "is_downregulated"

	// ColMinPct is derived per render pass, never loaded from a file.
	ColMinPct = "min_pct"
)

// suffixable lists the canonical columns the condition-suffixed
// convention qualifies (MI and the indicator flags never carry it).
var suffixable = map[string]bool{
	ColLog2FC:    true,
	ColAdjP:      true,
	ColAdjPLog10: true,
	ColPct1:      true,
	ColPct2:      true,
	ColPctRatio:  true,
}

// RequiredColumns is the canonical set every upload must resolve before
// any filtering or plotting runs.
func RequiredColumns() []string {
	return []string{
		ColMI,
		ColLog2FC,
		ColAdjP,
		ColAdjPLog10,
		ColMitoCarta,
		ColIl10,
		ColPctRatio,
	}
}

// HighlightAllowList is the binary columns the generalized highlight
// scatter accepts at run time.
func HighlightAllowList() []string {
	return []string{ColMitoCarta, ColUp, ColDown}
}

// Resolver maps external column headers onto the canonical schema.
// Headers may arrive in the base convention (avg_log2FC) or the
// condition-qualified one (avg_log2FC_N6); both resolve to the base
// name, and the base name wins when a workbook carries both.
type Resolver struct {
	suffix string
}

// NewResolver creates a resolver for the given condition suffix.
func NewResolver(conditionSuffix string) Resolver {
	return Resolver{suffix: conditionSuffix}
}

// Canonical returns the canonical name for an external header, or the
// header unchanged when it matches no alias (covariates and unknown
// columns pass through as-is).
func (r Resolver) Canonical(header string) string {
	if r.suffix == "" {
		return header
	}
	tail := "_" + r.suffix
	if len(header) > len(tail) && header[len(header)-len(tail):] == tail {
		base := header[:len(header)-len(tail)]
		if suffixable[base] {
			return base
		}
	}
	return header
}

// Validate checks the table for the required canonical columns and
// reports every absent one. On failure all downstream processing halts.
func Validate(t *Table, required []string) error {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return errors.SchemaMissing(missing)
	}
	return nil
}
