package filter

import (
	"sort"

	"degviz/domain/gene"
	"degviz/internal/errors"
)

// Regulation selects genes by the sign of their fold-change.
type Regulation int

const (
	Both Regulation = iota
	UpOnly
	DownOnly
)

func (r Regulation) String() string {
	switch r {
	case UpOnly:
		return "up"
	case DownOnly:
		return "down"
	default:
		return "both"
	}
}

// ParseRegulation maps the user-facing selector value onto a Regulation.
func ParseRegulation(s string) (Regulation, error) {
	switch s {
	case "", "both":
		return Both, nil
	case "up":
		return UpOnly, nil
	case "down":
		return DownOnly, nil
	}
	return Both, errors.InvalidInput("regulation must be one of: both, up, down")
}

// Params is the explicit filter bundle one render pass runs with.
// Thresholds are inclusive; PValMax applies after the missing->1.0
// substitution on adjusted p-values.
type Params struct {
	MIMin      float64
	PValMax    float64
	Regulation Regulation
}

// Apply reduces the table to rows satisfying the thresholds and the
// regulation predicate. UpOnly resorts descending by fold-change,
// DownOnly ascending; Both keeps the original order. An empty result
// is valid and flows downstream as an empty table.
func Apply(t *gene.Table, p Params) *gene.Table {
	var kept []gene.Record
	for _, r := range t.Records() {
		mi, ok := r.Value(gene.ColMI)
		if !ok || mi < p.MIMin {
			continue
		}
		if r.AdjP() > p.PValMax {
			continue
		}
		if p.Regulation != Both {
			fc, ok := r.Value(gene.ColLog2FC)
			if !ok {
				continue
			}
			if p.Regulation == UpOnly && fc <= 0 {
				continue
			}
			if p.Regulation == DownOnly && fc >= 0 {
				continue
			}
		}
		kept = append(kept, r)
	}

	switch p.Regulation {
	case UpOnly:
		sort.SliceStable(kept, func(i, j int) bool {
			fi, _ := kept[i].Value(gene.ColLog2FC)
			fj, _ := kept[j].Value(gene.ColLog2FC)
			return fi > fj
		})
	case DownOnly:
		sort.SliceStable(kept, func(i, j int) bool {
			fi, _ := kept[i].Value(gene.ColLog2FC)
			fj, _ := kept[j].Value(gene.ColLog2FC)
			return fi < fj
		})
	}

	return t.Subset(kept)
}
