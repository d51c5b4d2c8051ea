package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-check/internal/shared/metrics"
	"resume-check/internal/shared/telemetry"
	"resume-check/internal/uploads"
	"resume-check/report/model"
	"resume-check/report/render"
)

// Renderer produces the PDF form of a report.
type Renderer interface {
	RenderDocument(report model.AnalysisReport) (render.Document, error)
}

// Service contains business logic for analyses.
type Service struct {
	Repo     Repo
	Producer Producer
	Renderer Renderer
	// EnforceExtensions rejects uploads outside uploads.AllowedExtensions
	// instead of only logging them.
	EnforceExtensions bool
	Now               func() time.Time
}

// Analyze produces a report for the upload and makes it the session's
// current analysis, replacing any previous one.
func (s *Service) Analyze(ctx context.Context, sessionID string, up uploads.Upload) (Analysis, error) {
	if sessionID == "" {
		return Analysis{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if up.FileName == "" || up.SizeBytes == 0 {
		return Analysis{}, fmt.Errorf("%w: empty upload", ErrInvalidInput)
	}
	if err := up.CheckExtension(); err != nil {
		if s.EnforceExtensions {
			return Analysis{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		fields := logFields(ctx, sessionID)
		fields["file_name"] = up.FileName
		fields["extension"] = up.Extension
		telemetry.Warn("analysis.extension_not_allowed", fields)
	}

	report, err := s.Producer.Produce(ctx, up.FileName)
	if err != nil {
		return Analysis{}, fmt.Errorf("produce report: %w", err)
	}
	if err := report.Validate(); err != nil {
		return Analysis{}, fmt.Errorf("produce report: %w", err)
	}

	analysis := Analysis{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		FileName:  up.FileName,
		MimeType:  up.MimeType,
		SizeBytes: up.SizeBytes,
		Preview:   up.PreviewURL(),
		Report:    report.Normalized(),
		CreatedAt: s.now(),
	}
	if err := s.Repo.Put(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("store analysis: %w", err)
	}

	metrics.IncUploads()
	fields := logFields(ctx, sessionID)
	fields["analysis_id"] = analysis.ID
	fields["file_name"] = analysis.FileName
	fields["mime_type"] = analysis.MimeType
	fields["size_bytes"] = analysis.SizeBytes
	fields["score"] = analysis.Report.Score
	telemetry.Info("analysis.created", fields)
	return analysis, nil
}

// Current returns the session's current analysis.
func (s *Service) Current(ctx context.Context, sessionID string) (Analysis, error) {
	if sessionID == "" {
		return Analysis{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	return s.Repo.Current(ctx, sessionID)
}

// Export renders the session's current report as a PDF.
func (s *Service) Export(ctx context.Context, sessionID string) ([]byte, error) {
	analysis, err := s.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	doc, err := s.render(ctx, analysis.ID, analysis.Report)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// Render validates and renders a caller-supplied report without storing it.
func (s *Service) Render(ctx context.Context, report model.AnalysisReport) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	doc, err := s.render(ctx, "", report)
	if err != nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// Discard drops the session's current analysis. Discarding an empty session
// is not an error.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	err := s.Repo.Delete(ctx, sessionID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	metrics.IncDiscarded()
	telemetry.Info("analysis.discarded", logFields(ctx, sessionID))
	return nil
}

func (s *Service) render(ctx context.Context, analysisID string, report model.AnalysisReport) (render.Document, error) {
	if err := ctx.Err(); err != nil {
		return render.Document{}, err
	}
	start := time.Now()
	doc, err := s.Renderer.RenderDocument(report)
	elapsed := time.Since(start)

	fields := logFields(ctx, "")
	fields["analysis_id"] = analysisID
	fields["duration_ms"] = float64(elapsed.Microseconds()) / 1000.0
	if err != nil {
		metrics.ObserveRender(metrics.ResultError, elapsed, 0)
		fields["err"] = err
		telemetry.Error("report.render_failed", fields)
		return render.Document{}, fmt.Errorf("render report: %w", err)
	}
	metrics.ObserveRender(metrics.ResultOK, elapsed, doc.Pages)
	fields["pages"] = doc.Pages
	fields["bytes"] = len(doc.Bytes)
	telemetry.Info("report.rendered", fields)
	return doc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
