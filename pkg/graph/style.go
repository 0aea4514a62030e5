package graph

// Category is the visual class of a node.
type Category string

const (
	CategoryInput    Category = "input"
	CategoryCompound Category = "comp"
	CategoryStrong   Category = "gold"
	CategoryWeak     Category = "normal"
)

// Edge weights. Edges of strongly associated ingredients are drawn heavier.
const (
	BaseEdgeWeight   = 1.0
	StrongEdgeWeight = 3.0
)

// Palette maps node categories to display colors.
type Palette map[Category]string

// DefaultPalette is red for inputs, green for compounds, gold for strong and
// purple for weak secondary ingredients.
var DefaultPalette = Palette{
	CategoryInput:    "#ff6b6b",
	CategoryCompound: "#51cf66",
	CategoryStrong:   "#FFD700",
	CategoryWeak:     "#d0a9f5",
}

// Color returns the color of a category, gray when unknown.
func (p Palette) Color(c Category) string {
	if color, ok := p[c]; ok {
		return color
	}
	return "#888888"
}

var categorySizes = map[Category]int{
	CategoryInput:    25,
	CategoryCompound: 15,
	CategoryStrong:   20,
	CategoryWeak:     10,
}

var categoryTitles = map[Category]string{
	CategoryInput:    "输入",
	CategoryCompound: "物质",
	CategoryStrong:   "高匹配",
	CategoryWeak:     "关联",
}

// Rank orders ingredient categories: input, strong, weak. Compounds sort last.
func (c Category) Rank() int {
	switch c {
	case CategoryInput:
		return 0
	case CategoryStrong:
		return 1
	case CategoryWeak:
		return 2
	default:
		return 3
	}
}
