package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"resume-check/internal/uploads"
	"resume-check/report/model"
	"resume-check/report/render"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

type failingRenderer struct{}

func (failingRenderer) RenderDocument(model.AnalysisReport) (render.Document, error) {
	return render.Document{}, &render.RenderError{Stage: "output", Err: errors.New("disk full")}
}

type brokenProducer struct{}

func (brokenProducer) Produce(context.Context, string) (model.AnalysisReport, error) {
	return model.AnalysisReport{Score: 140, FileName: "cv.pdf"}, nil
}

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo(func() time.Time { return testNow })
	r := render.NewRenderer(render.DefaultConfig())
	r.Now = func() time.Time { return testNow }
	return &Service{
		Repo:     repo,
		Producer: MockProducer{},
		Renderer: r,
		Now:      func() time.Time { return testNow },
	}, repo
}

func testUpload(t *testing.T, name, body string) uploads.Upload {
	t.Helper()
	up, err := uploads.Read(name, strings.NewReader(body), 0)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	return up
}

func TestAnalyzeStoresCurrentAnalysis(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	analysis, err := svc.Analyze(ctx, "tab", testUpload(t, "jane.txt", "Jane Doe resume"))
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.ID == "" {
		t.Fatalf("expected analysis id")
	}
	if analysis.Report.FileName != "jane.txt" || analysis.Report.Score != 85 {
		t.Fatalf("unexpected report %s %d", analysis.Report.FileName, analysis.Report.Score)
	}
	if !strings.HasPrefix(analysis.Preview, "data:text/plain") {
		t.Fatalf("unexpected preview %q", analysis.Preview)
	}
	if !analysis.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected createdAt %v", analysis.CreatedAt)
	}

	current, err := svc.Current(ctx, "tab")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != analysis.ID {
		t.Fatalf("expected current %s, got %s", analysis.ID, current.ID)
	}
}

func TestAnalyzeReplacesPreviousAnalysis(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.Analyze(ctx, "tab", testUpload(t, "first.pdf", "one"))
	if err != nil {
		t.Fatalf("analyze first: %v", err)
	}
	second, err := svc.Analyze(ctx, "tab", testUpload(t, "second.pdf", "two"))
	if err != nil {
		t.Fatalf("analyze second: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct analysis ids")
	}

	current, err := svc.Current(ctx, "tab")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != second.ID || current.FileName != "second.pdf" {
		t.Fatalf("expected the second analysis to replace the first")
	}
	if repo.Len() != 1 {
		t.Fatalf("expected a single stored analysis, got %d", repo.Len())
	}
}

func TestAnalyzeExtensionIsAdvisoryByDefault(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Analyze(context.Background(), "tab", testUpload(t, "resume.rtf", "text")); err != nil {
		t.Fatalf("expected advisory extension check, got %v", err)
	}
}

func TestAnalyzeEnforcedExtension(t *testing.T) {
	svc, repo := newTestService()
	svc.EnforceExtensions = true

	_, err := svc.Analyze(context.Background(), "tab", testUpload(t, "resume.rtf", "text"))
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, uploads.ErrExtension) {
		t.Fatalf("expected ErrInvalidInput wrapping ErrExtension, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("rejected upload must not be stored")
	}
}

func TestAnalyzeRejectsInvalidProducedReport(t *testing.T) {
	svc, repo := newTestService()
	svc.Producer = brokenProducer{}

	_, err := svc.Analyze(context.Background(), "tab", testUpload(t, "cv.pdf", "x"))
	var invalid *model.InvalidReportError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidReportError, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("invalid report must not be stored")
	}
}

func TestAnalyzeRequiresSession(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Analyze(context.Background(), "", testUpload(t, "cv.pdf", "x")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExportRendersCurrentReport(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Export(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before any upload, got %v", err)
	}

	if _, err := svc.Analyze(ctx, "tab", testUpload(t, "cv.pdf", "x")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	first, err := svc.Export(ctx, "tab")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	second, err := svc.Export(ctx, "tab")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(string(first), "%PDF-") {
		t.Fatalf("expected a PDF")
	}
	if string(first) != string(second) {
		t.Fatalf("expected repeated exports to be identical")
	}
}

func TestExportRenderFailure(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Analyze(ctx, "tab", testUpload(t, "cv.pdf", "x")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	svc.Renderer = failingRenderer{}

	data, err := svc.Export(ctx, "tab")
	var renderErr *render.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if data != nil {
		t.Fatalf("expected no bytes on failure")
	}
}

func TestRenderValidatesReport(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Render(context.Background(), model.AnalysisReport{Score: -1})
	var invalid *model.InvalidReportError
	if !errors.As(err, &invalid) || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(invalid.Fields) != 2 {
		t.Fatalf("expected score and fileName issues, got %+v", invalid.Fields)
	}

	data, err := svc.Render(context.Background(), model.Sample("posted.pdf"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected PDF bytes")
	}
}

func TestDiscardIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Analyze(ctx, "tab", testUpload(t, "cv.pdf", "x")); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if err := svc.Discard(ctx, "tab"); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if err := svc.Discard(ctx, "tab"); err != nil {
		t.Fatalf("second discard: %v", err)
	}
	if _, err := svc.Current(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after discard, got %v", err)
	}
}

func TestAnalyzeRotatingSessionsDoNotAccumulate(t *testing.T) {
	svc, repo := newTestService()
	now := testNow
	clock := func() time.Time { return now }
	svc.Now = clock
	repo.now = clock
	ctx := context.Background()

	body := strings.Repeat("resume line\n", 64<<10)
	for i := 0; i < 200; i++ {
		if _, err := svc.Analyze(ctx, fmt.Sprintf("tab-%d", i), testUpload(t, "cv.txt", body)); err != nil {
			t.Fatalf("analyze %d: %v", i, err)
		}
		now = now.Add(time.Hour)
	}

	if repo.Len() != 0 {
		t.Fatalf("expected every idle session dropped, %d still held", repo.Len())
	}
}
