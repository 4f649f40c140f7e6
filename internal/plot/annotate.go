package plot

import "degviz/domain/gene"

// Arrow offsets for gene labels, in pixels from the anchor.
const (
	annotationAX = 20
	annotationAY = -20
)

// Annotate emits a label anchor for each requested gene present in the
// filtered table, at its (x, y) position on the chart in use. Genes
// absent from the table are skipped silently since filtering may have
// removed them; an empty intersection yields zero anchors.
func Annotate(t *gene.Table, genes []string, xCol, yCol string) []Annotation {
	var anchors []Annotation
	for _, symbol := range genes {
		r, ok := t.Get(symbol)
		if !ok {
			continue
		}
		x, xok := r.Value(xCol)
		y, yok := r.Value(yCol)
		if !xok || !yok {
			continue
		}
		anchors = append(anchors, Annotation{
			X:         x,
			Y:         y,
			Text:      symbol,
			ShowArrow: true,
			AX:        annotationAX,
			AY:        annotationAY,
		})
	}
	return anchors
}
