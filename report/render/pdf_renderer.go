package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-check/report/model"
)

// FileName is the name the exported report is offered under.
const FileName = "detailed-resume-analysis.pdf"

// ContentType is the MIME type of rendered reports.
const ContentType = "application/pdf"

// embeddedFamily names the font registered from Config.FontFile.
const embeddedFamily = "report"

// RenderError reports a failure of the PDF backend. No partial document is
// ever returned alongside it.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Document is a rendered report.
type Document struct {
	Bytes []byte
	Pages int
}

// Renderer turns analysis reports into paginated PDFs. It holds no mutable
// state, so one Renderer can serve concurrent calls.
type Renderer struct {
	Config Config
	Now    func() time.Time
}

// NewRenderer constructs a Renderer with the given layout.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{Config: cfg, Now: time.Now}
}

// RenderReport renders a report with the default layout.
func RenderReport(report model.AnalysisReport) ([]byte, error) {
	return NewRenderer(DefaultConfig()).Render(report)
}

// Render returns the PDF bytes for the report.
func (r *Renderer) Render(report model.AnalysisReport) ([]byte, error) {
	doc, err := r.RenderDocument(report)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// Write renders the report and copies it to w only once rendering succeeded.
func (r *Renderer) Write(w io.Writer, report model.AnalysisReport) error {
	doc, err := r.RenderDocument(report)
	if err != nil {
		return err
	}
	if _, err := w.Write(doc.Bytes); err != nil {
		return &RenderError{Stage: "write", Err: err}
	}
	return nil
}

// RenderDocument lays out and paints the report.
func (r *Renderer) RenderDocument(report model.AnalysisReport) (Document, error) {
	cfg := r.config()
	if err := cfg.Validate(); err != nil {
		return Document{}, err
	}
	now := r.now()

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetMargins(cfg.LeftMargin, cfg.TopMargin, cfg.RightMargin)
	pdf.SetAutoPageBreak(false, cfg.BottomMargin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(cfg.Title, true)
	pdf.SetSubject(report.FileName, true)
	pdf.SetCreator("Resume Check", true)

	p, err := newPainter(pdf, cfg)
	if err != nil {
		return Document{}, &RenderError{Stage: "font", Err: err}
	}
	plan := Layout(report, cfg, p, now)
	if err := pdf.Error(); err != nil {
		return Document{}, &RenderError{Stage: "layout", Err: err}
	}

	p.paint(cfg, plan)
	if err := pdf.Error(); err != nil {
		return Document{}, &RenderError{Stage: "paint", Err: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, &RenderError{Stage: "output", Err: err}
	}
	return Document{Bytes: buf.Bytes(), Pages: plan.Pages}, nil
}

func (r *Renderer) config() Config {
	if r == nil || r.Config == (Config{}) {
		return DefaultConfig()
	}
	return r.Config
}

func (r *Renderer) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// painter measures and draws with the fonts of one fpdf document. Core fonts
// are cp1252, so with them all text goes through the translator first.
type painter struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

// newPainter uses the UTF-8 font from cfg.FontFile when set. Its bold style
// is the same face.
func newPainter(pdf *fpdf.Fpdf, cfg Config) (*painter, error) {
	if cfg.FontFile == "" {
		return &painter{pdf: pdf, family: cfg.FontFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}, nil
	}
	data, err := os.ReadFile(cfg.FontFile)
	if err != nil {
		return nil, err
	}
	pdf.AddUTF8FontFromBytes(embeddedFamily, "", data)
	pdf.AddUTF8FontFromBytes(embeddedFamily, "B", data)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	return &painter{pdf: pdf, family: embeddedFamily, tr: func(s string) string { return s }}, nil
}

func (p *painter) setStyle(style TextStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	p.pdf.SetFont(p.family, fontStyle, style.Size)
	p.pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
}

// TextWidth implements Measurer.
func (p *painter) TextWidth(style TextStyle, text string) float64 {
	p.setStyle(style)
	return p.pdf.GetStringWidth(p.tr(text))
}

func (p *painter) paint(cfg Config, plan Plan) {
	page := 0
	for _, op := range plan.Ops {
		for page < op.Page {
			p.pdf.AddPage()
			page++
		}
		p.setStyle(cfg.Styles.For(op.Kind))
		p.pdf.Text(op.X, op.Y, p.tr(op.Text))
	}
}
