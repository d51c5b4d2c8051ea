package render

// Color is an RGB triple in the 0-255 range.
type Color struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// TextStyle captures the font treatment for one kind of line.
type TextStyle struct {
	Size  float64 `yaml:"size"`
	Bold  bool    `yaml:"bold"`
	Color Color   `yaml:"color"`
}

// LineKind identifies what a drawn line is, which decides its style.
type LineKind int

const (
	KindTitle LineKind = iota
	KindMeta
	KindScore
	KindHeading
	KindBullet
	KindFooter
)

func (k LineKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindMeta:
		return "meta"
	case KindScore:
		return "score"
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	case KindFooter:
		return "footer"
	default:
		return "unknown"
	}
}

var (
	AccentColor = Color{R: 37, G: 99, B: 235}
	BodyColor   = Color{R: 33, G: 33, B: 33}
	MutedColor  = Color{R: 128, G: 128, B: 128}
)

// Styles centralizes the formatting of every line kind.
type Styles struct {
	Title   TextStyle `yaml:"title"`
	Meta    TextStyle `yaml:"meta"`
	Score   TextStyle `yaml:"score"`
	Heading TextStyle `yaml:"heading"`
	Body    TextStyle `yaml:"body"`
	Footer  TextStyle `yaml:"footer"`
}

// For returns the style used for lines of the given kind.
func (s Styles) For(kind LineKind) TextStyle {
	switch kind {
	case KindTitle:
		return s.Title
	case KindMeta:
		return s.Meta
	case KindScore:
		return s.Score
	case KindHeading:
		return s.Heading
	case KindFooter:
		return s.Footer
	default:
		return s.Body
	}
}

func defaultStyles() Styles {
	return Styles{
		Title:   TextStyle{Size: 18, Bold: true, Color: AccentColor},
		Meta:    TextStyle{Size: 9, Color: BodyColor},
		Score:   TextStyle{Size: 12, Bold: true, Color: BodyColor},
		Heading: TextStyle{Size: 12, Bold: true, Color: AccentColor},
		Body:    TextStyle{Size: 9, Color: BodyColor},
		Footer:  TextStyle{Size: 8, Color: MutedColor},
	}
}
