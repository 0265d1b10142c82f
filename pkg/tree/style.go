package tree

// Style holds the visual attributes of a node.
type Style struct {
	Background      string `json:"background"`
	Color           string `json:"color"`
	Padding         int    `json:"padding"`
	BorderRadius    int    `json:"borderRadius"`
	Border          string `json:"border"`
	FontSize        int    `json:"fontSize"`
	HighlightBorder string `json:"-"`
}

// Theme is the color pair applied on top of the base style.
type Theme struct {
	Background string `mapstructure:"background" json:"background"`
	Color      string `mapstructure:"color" json:"color"`
}

// Themes assigns one theme to each value type.
type Themes struct {
	Object    Theme `mapstructure:"object" json:"object"`
	Array     Theme `mapstructure:"array" json:"array"`
	Primitive Theme `mapstructure:"primitive" json:"primitive"`
}

// DefaultThemes returns the stock palette: violet objects, green arrays and
// amber primitives.
func DefaultThemes() Themes {
	return Themes{
		Object:    Theme{Background: "#7c3aed", Color: "#fff"},
		Array:     Theme{Background: "#059669", Color: "#fff"},
		Primitive: Theme{Background: "#f59e0b", Color: "#111"},
	}
}

// DefaultBase returns the style shared by every node.
func DefaultBase() Style {
	return Style{
		Padding:         10,
		BorderRadius:    8,
		Border:          "2px solid rgba(255,255,255,0.9)",
		FontSize:        13,
		HighlightBorder: "4px solid #fef08a",
	}
}

// For returns the theme for t.
func (th Themes) For(t ValueType) Theme {
	switch t {
	case Object:
		return th.Object
	case Array:
		return th.Array
	case Primitive:
		return th.Primitive
	default:
		panic("tree: unknown value type " + t.String())
	}
}

// StyleFor combines base with the theme for t.
func StyleFor(t ValueType, base Style, th Themes) Style {
	theme := th.For(t)
	s := base
	s.Background = theme.Background
	s.Color = theme.Color
	return s
}
