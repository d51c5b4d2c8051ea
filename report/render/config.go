package render

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig is returned when a Config cannot lay out a single line.
var ErrInvalidConfig = errors.New("invalid render config")

// Config holds page geometry and styling. All lengths are in points.
type Config struct {
	PageWidth    float64 `yaml:"pageWidth"`
	PageHeight   float64 `yaml:"pageHeight"`
	TopMargin    float64 `yaml:"topMargin"`
	BottomMargin float64 `yaml:"bottomMargin"`
	LeftMargin   float64 `yaml:"leftMargin"`
	RightMargin  float64 `yaml:"rightMargin"`
	LineHeight   float64 `yaml:"lineHeight"`
	BulletIndent float64 `yaml:"bulletIndent"`
	Bullet       string  `yaml:"bullet"`
	// TitleAdvance is the number of line heights consumed by the title.
	TitleAdvance int     `yaml:"titleAdvance"`
	FooterOffset float64 `yaml:"footerOffset"`
	FontFamily   string  `yaml:"fontFamily"`
	// FontFile is an optional UTF-8 TrueType font. Without it the core
	// fonts are used and text outside cp1252 is lost.
	FontFile     string  `yaml:"fontFile"`
	Title        string  `yaml:"title"`
	FooterText   string  `yaml:"footerText"`
	TimeFormat   string  `yaml:"timeFormat"`
	Styles       Styles  `yaml:"styles"`
}

// DefaultConfig returns an A4 portrait layout.
func DefaultConfig() Config {
	return Config{
		PageWidth:    595.28,
		PageHeight:   841.89,
		TopMargin:    40,
		BottomMargin: 40,
		LeftMargin:   40,
		RightMargin:  40,
		LineHeight:   10,
		BulletIndent: 15,
		Bullet:       "•",
		TitleAdvance: 2,
		FooterOffset: 20,
		FontFamily:   "Helvetica",
		Title:        "Resume Analysis Report",
		FooterText:   "Generated by Resume Check - ATS Resume Analyzer",
		TimeFormat:   "January 2, 2006 15:04 MST",
		Styles:       defaultStyles(),
	}
}

// Validate rejects geometry that leaves no room for a line of text.
func (c Config) Validate() error {
	var problems []string
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		problems = append(problems, "page size must be positive")
	}
	if c.LineHeight <= 0 {
		problems = append(problems, "lineHeight must be positive")
	}
	if c.TopMargin < 0 || c.BottomMargin < 0 || c.LeftMargin < 0 || c.RightMargin < 0 || c.BulletIndent < 0 {
		problems = append(problems, "margins must not be negative")
	}
	if c.TitleAdvance < 1 {
		problems = append(problems, "titleAdvance must be at least 1")
	}
	if strings.TrimSpace(c.FontFamily) == "" {
		problems = append(problems, "fontFamily is required")
	}
	if len(problems) == 0 {
		if c.PrintableWidth() <= 0 {
			problems = append(problems, "margins leave no printable width")
		}
		if c.Capacity() < 1 {
			problems = append(problems, "margins leave no room for a line")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// PrintableWidth is the page width minus both margins and the bullet indent.
func (c Config) PrintableWidth() float64 {
	return c.PageWidth - c.LeftMargin - c.RightMargin - c.BulletIndent
}

// Threshold is the lowest baseline plus line height allowed on a page.
func (c Config) Threshold() float64 {
	return c.PageHeight - c.BottomMargin
}

// Capacity is the number of line slots that fit on one page.
func (c Config) Capacity() int {
	if c.LineHeight <= 0 {
		return 0
	}
	return int(math.Floor((c.PageHeight - c.TopMargin - c.BottomMargin) / c.LineHeight))
}
