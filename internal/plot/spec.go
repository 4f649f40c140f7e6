package plot

import (
	"strings"
	"unicode"

	"degviz/domain/gene"
)

// ColorMode selects how a chart encodes its third dimension.
type ColorMode string

const (
	ColorDiscrete   ColorMode = "discrete"
	ColorContinuous ColorMode = "continuous"
)

// Rendering constants carried by every spec. The client-side renderer
// (Plotly) consumes these verbatim.
const (
	CategoryOther  = "Other"
	colorOther     = "blue"
	colorHighlight = "red"

	// ContinuousScale is the gradient name for continuous coloring.
	ContinuousScale = "Sunset"
)

// Point is one gene's position on a chart. Category is set in discrete
// mode, Value in continuous mode. Hover carries the fixed tooltip field
// set; absent statistics are omitted.
type Point struct {
	Gene     string             `json:"gene"`
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	Category string             `json:"category,omitempty"`
	Value    float64            `json:"value"`
	Hover    map[string]float64 `json:"hover,omitempty"`
}

// Annotation is a text label anchored at a gene's coordinates, with the
// arrow offset the renderer draws from.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"show_arrow"`
	AX        int     `json:"ax"`
	AY        int     `json:"ay"`
}

// Spec is a declarative chart description: points, color encoding, axis
// titles and annotations. No rendering logic lives here.
type Spec struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	XColumn     string            `json:"x_column"`
	YColumn     string            `json:"y_column"`
	XTitle      string            `json:"x_title"`
	YTitle      string            `json:"y_title"`
	Mode        ColorMode         `json:"mode"`
	ColorColumn string            `json:"color_column,omitempty"`
	ColorTitle  string            `json:"color_title,omitempty"`
	ColorMap    map[string]string `json:"color_map,omitempty"`
	ColorScale  string            `json:"color_scale,omitempty"`
	Points      []Point           `json:"points"`
	Annotations []Annotation      `json:"annotations,omitempty"`
}

// axisTitles overrides humanization for the columns the dashboard has
// established labels for.
var axisTitles = map[string]string{
	gene.ColMI:        "Mutual Information (condition)",
	gene.ColLog2FC:    "Average log2 Fold Change",
	gene.ColAdjPLog10: "-log10(adjusted p-value)",
}

// AxisTitle returns the display label for a column: a known override,
// or the humanized column identifier.
func AxisTitle(col string) string {
	if title, ok := axisTitles[col]; ok {
		return title
	}
	return humanize(col)
}

// humanize turns a column identifier into a display label: separators
// become spaces and each word is title-cased.
func humanize(col string) string {
	s := strings.NewReplacer("_", " ", ".", " ").Replace(col)
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
