package render

import (
	"fmt"
	"time"

	"resume-check/report/model"
)

// DrawOp is one line of text placed on a page. Y is the baseline.
type DrawOp struct {
	Page int
	X    float64
	Y    float64
	Kind LineKind
	Text string
}

// Plan is the fully paginated document, ready to paint.
type Plan struct {
	Pages int
	Ops   []DrawOp
}

// Lines returns the ops of the given kind in draw order.
func (p Plan) Lines(kind LineKind) []DrawOp {
	var out []DrawOp
	for _, op := range p.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

type layout struct {
	cfg Config
	m   Measurer
	ops []DrawOp
}

// Layout paginates the report. It allocates all of its state per call and
// never touches the report's lists.
func Layout(report model.AnalysisReport, cfg Config, m Measurer, generatedAt time.Time) Plan {
	l := &layout{cfg: cfg, m: m}
	report = report.Normalized()

	c := Start(cfg)
	c = l.emit(c, KindTitle, cfg.LeftMargin, cfg.Title, cfg.TitleAdvance)
	c = l.emit(c, KindMeta, cfg.LeftMargin, "File: "+report.FileName, 1)
	c = l.emit(c, KindMeta, cfg.LeftMargin, "Generated: "+generatedAt.Format(cfg.TimeFormat), 1)
	c = c.Advance(cfg, 1)
	c = l.emit(c, KindScore, cfg.LeftMargin, fmt.Sprintf("Overall ATS Score: %d/100", report.Score), 1)
	c = c.Advance(cfg, 1)

	for _, section := range Sections(report) {
		c = l.section(c, section)
	}

	l.footer(c.Page)
	return Plan{Pages: c.Page, Ops: l.ops}
}

// emit draws one line at the next free slot and returns the advanced cursor.
func (l *layout) emit(c Cursor, kind LineKind, x float64, text string, advance int) Cursor {
	c = c.Reserve(l.cfg)
	l.ops = append(l.ops, DrawOp{Page: c.Page, X: x, Y: c.Y, Kind: kind, Text: text})
	return c.Advance(l.cfg, advance)
}

func (l *layout) section(c Cursor, s Section) Cursor {
	c = l.emit(c, KindHeading, l.cfg.LeftMargin, s.Heading, 1)

	body := l.cfg.Styles.Body
	prefix := l.cfg.Bullet + " "
	width := l.cfg.PrintableWidth() - l.m.TextWidth(body, prefix)
	x := l.cfg.LeftMargin + l.cfg.BulletIndent
	for _, item := range s.Lines() {
		for _, line := range Wrap(l.m, body, item, width) {
			c = l.emit(c, KindBullet, x, prefix+line, 1)
		}
	}
	return c.Advance(l.cfg, 1)
}

// footer is drawn once, on the page rendering ends on.
func (l *layout) footer(page int) {
	if l.cfg.FooterText == "" {
		return
	}
	width := l.m.TextWidth(l.cfg.Styles.Footer, l.cfg.FooterText)
	l.ops = append(l.ops, DrawOp{
		Page: page,
		X:    (l.cfg.PageWidth - width) / 2,
		Y:    l.cfg.PageHeight - l.cfg.FooterOffset,
		Kind: KindFooter,
		Text: l.cfg.FooterText,
	})
}
