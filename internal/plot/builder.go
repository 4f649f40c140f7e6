package plot

import (
	"fmt"
	"math"

	"degviz/domain/gene"
)

// hoverColumns is the fixed tooltip field set attached to every point.
var hoverColumns = []string{
	gene.ColAdjP,
	gene.ColIl10,
	gene.ColIl6,
	gene.ColPctRatio,
	gene.ColPct1,
	gene.ColPct2,
}

// Request bundles the run-time chart inputs. Widget state never leaks
// in ambiently; the shell fills this in per render pass.
type Request struct {
	// X, Y and Highlight configure the generalized highlight scatter.
	// Empty values fall back to the MitoCarta defaults.
	X         string
	Y         string
	Highlight string

	// Annotate lists gene symbols to label; symbols filtered out of the
	// table are skipped silently. ShowAnnotations false suppresses the
	// whole overlay.
	Annotate        []string
	ShowAnnotations bool
}

// BuildAll produces the five named chart variants plus the generalized
// highlight scatter for the already-filtered table.
func BuildAll(t *gene.Table, req Request) []Spec {
	x := req.X
	if x == "" {
		x = gene.ColMI
	}
	y := req.Y
	if y == "" {
		y = gene.ColLog2FC
	}
	highlight := req.Highlight
	if highlight == "" {
		highlight = gene.ColMitoCarta
	}

	var annotate []string
	if req.ShowAnnotations {
		annotate = req.Annotate
	}

	return []Spec{
		MitoCartaScatter(t, annotate),
		PctRatioScatter(t),
		VolcanoMI(t),
		VolcanoIl10(t),
		VolcanoMinPct(t),
		HighlightScatter(t, "highlight", x, y, highlight, annotate),
	}
}

// MitoCartaScatter is MI vs fold-change with the reference gene set
// highlighted in red.
func MitoCartaScatter(t *gene.Table, annotate []string) Spec {
	return HighlightScatter(t, "mitocarta", gene.ColMI, gene.ColLog2FC, gene.ColMitoCarta, annotate)
}

// HighlightScatter builds a two-category scatter: rows where the binary
// column equals 1 form the highlight category, everything else is
// "Other". A missing column degrades to all-"Other" instead of failing,
// since optional flag columns may be absent from a workbook.
func HighlightScatter(t *gene.Table, name, x, y, binaryCol string, annotate []string) Spec {
	spec := Spec{
		Name:    name,
		Title:   fmt.Sprintf("Scatter plot of %s vs %s (%s highlighted) (n=%d)", x, y, binaryCol, t.Len()),
		XColumn: x,
		YColumn: y,
		XTitle:  AxisTitle(x),
		YTitle:  AxisTitle(y),
		Mode:    ColorDiscrete,
		ColorMap: map[string]string{
			CategoryOther: colorOther,
			binaryCol:     colorHighlight,
		},
	}

	hasFlag := t.HasColumn(binaryCol)
	for _, r := range t.Records() {
		xv, xok := r.Value(x)
		yv, yok := r.Value(y)
		if !xok || !yok {
			continue
		}
		category := CategoryOther
		if hasFlag && r.Flag(binaryCol) {
			category = binaryCol
		}
		spec.Points = append(spec.Points, Point{
			Gene:     r.Symbol,
			X:        xv,
			Y:        yv,
			Category: category,
			Hover:    hoverFor(r),
		})
	}

	spec.Annotations = Annotate(t, annotate, x, y)
	return spec
}

// PctRatioScatter is MI vs fold-change colored by the percentage ratio.
func PctRatioScatter(t *gene.Table) Spec {
	return continuousScatter(t, "pct_ratio",
		fmt.Sprintf("Scatter plot of %s vs %s (colored by %s) (n=%d)", gene.ColMI, gene.ColLog2FC, gene.ColPctRatio, t.Len()),
		gene.ColMI, gene.ColLog2FC, gene.ColPctRatio, columnValue(t, gene.ColPctRatio))
}

// VolcanoMI is fold-change vs significance colored by MI.
func VolcanoMI(t *gene.Table) Spec {
	return continuousScatter(t, "volcano_mi",
		fmt.Sprintf("Volcano plot colored by MI (n=%d)", t.Len()),
		gene.ColLog2FC, gene.ColAdjPLog10, gene.ColMI, columnValue(t, gene.ColMI))
}

// VolcanoIl10 is fold-change vs significance colored by the Il10
// covariate.
func VolcanoIl10(t *gene.Table) Spec {
	return continuousScatter(t, "volcano_il10",
		fmt.Sprintf("Volcano plot colored by IL10 (n=%d)", t.Len()),
		gene.ColLog2FC, gene.ColAdjPLog10, gene.ColIl10, columnValue(t, gene.ColIl10))
}

// VolcanoMinPct is fold-change vs significance colored by the derived
// min_pct = min(pct.1, pct.2), computed per row on every pass.
func VolcanoMinPct(t *gene.Table) Spec {
	valueFor := func(r gene.Record) (float64, bool) {
		p1, ok1 := r.Value(gene.ColPct1)
		p2, ok2 := r.Value(gene.ColPct2)
		if !ok1 || !ok2 {
			return 0, false
		}
		return math.Min(p1, p2), true
	}
	if !t.HasColumn(gene.ColPct1) || !t.HasColumn(gene.ColPct2) {
		valueFor = nil
	}
	return continuousScatter(t, "volcano_min_pct",
		fmt.Sprintf("Volcano plot colored by %s (n=%d)", gene.ColMinPct, t.Len()),
		gene.ColLog2FC, gene.ColAdjPLog10, gene.ColMinPct, valueFor)
}

// continuousScatter builds a chart on a continuous color scale. A nil
// valueFor (color column absent) degrades to all-"Other" discrete
// coloring; rows missing the color statistic are omitted.
func continuousScatter(t *gene.Table, name, title, x, y, colorCol string, valueFor func(gene.Record) (float64, bool)) Spec {
	spec := Spec{
		Name:        name,
		Title:       title,
		XColumn:     x,
		YColumn:     y,
		XTitle:      AxisTitle(x),
		YTitle:      AxisTitle(y),
		Mode:        ColorContinuous,
		ColorColumn: colorCol,
		ColorTitle:  AxisTitle(colorCol),
		ColorScale:  ContinuousScale,
	}
	if valueFor == nil {
		spec.Mode = ColorDiscrete
		spec.ColorColumn = ""
		spec.ColorTitle = ""
		spec.ColorScale = ""
		spec.ColorMap = map[string]string{CategoryOther: colorOther}
	}

	for _, r := range t.Records() {
		xv, xok := r.Value(x)
		yv, yok := r.Value(y)
		if !xok || !yok {
			continue
		}
		p := Point{
			Gene:  r.Symbol,
			X:     xv,
			Y:     yv,
			Hover: hoverFor(r),
		}
		if valueFor == nil {
			p.Category = CategoryOther
		} else {
			v, ok := valueFor(r)
			if !ok {
				continue
			}
			p.Value = v
		}
		spec.Points = append(spec.Points, p)
	}
	return spec
}

// columnValue adapts a plain column lookup into a valueFor function,
// returning nil when the table never resolved the column.
func columnValue(t *gene.Table, col string) func(gene.Record) (float64, bool) {
	if !t.HasColumn(col) {
		return nil
	}
	return func(r gene.Record) (float64, bool) {
		return r.Value(col)
	}
}

func hoverFor(r gene.Record) map[string]float64 {
	hover := make(map[string]float64)
	for _, col := range hoverColumns {
		if v, ok := r.Value(col); ok {
			hover[col] = v
		}
	}
	if len(hover) == 0 {
		return nil
	}
	return hover
}
