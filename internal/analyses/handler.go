package analyses

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/server/middleware"
	"resume-check/internal/shared/server/respond"
	"resume-check/internal/uploads"
	"resume-check/report/model"
	"resume-check/report/render"
)

const (
	// multipartOverhead is the allowance for form boundaries and headers on
	// top of the file itself.
	multipartOverhead = 1 << 20
	// DefaultMaxReportBytes caps JSON bodies sent to /reports/render.
	DefaultMaxReportBytes = 1 << 20
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	MaxReportBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = uploads.DefaultMaxBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes, MaxReportBytes: DefaultMaxReportBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses/current", h.current)
	rg.GET("/analyses/current/report.pdf", h.export)
	rg.DELETE("/analyses/current", h.discard)
	rg.POST("/reports/render", h.renderReport)
}

func (h *Handler) create(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	up, err := uploads.Read(fileHeader.Filename, file, h.MaxUploadBytes)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error(), nil)
		case errors.Is(err, uploads.ErrEmptyFile), errors.Is(err, uploads.ErrInvalidName):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		}
		return
	}

	ctx := requestContext(c)
	analysis, err := h.Svc.Analyze(ctx, sessionID, up)
	if err != nil {
		switch {
		case errors.Is(err, uploads.ErrExtension):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file_type", err.Error(), []map[string]string{
				{"field": "file", "issue": "allowed extensions: .pdf, .doc, .docx, .txt"},
			})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	respond.JSON(c, http.StatusCreated, analysis)
}

func (h *Handler) current(c *gin.Context) {
	ctx := requestContext(c)
	analysis, err := h.Svc.Current(ctx, middleware.SessionIDFromContext(c))
	if err != nil {
		h.lookupError(c, err, "failed to fetch analysis")
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	respond.OK(c, analysis)
}

func (h *Handler) export(c *gin.Context) {
	ctx := requestContext(c)
	data, err := h.Svc.Export(ctx, middleware.SessionIDFromContext(c))
	if err != nil {
		var renderErr *render.RenderError
		switch {
		case errors.As(err, &renderErr), errors.Is(err, render.ErrInvalidConfig):
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to generate report", nil)
		default:
			h.lookupError(c, err, "failed to export analysis")
		}
		return
	}

	respond.Attachment(c, render.FileName, render.ContentType, data)
}

func (h *Handler) renderReport(c *gin.Context) {
	limit := h.MaxReportBytes
	if limit <= 0 {
		limit = DefaultMaxReportBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	var report model.AnalysisReport
	if err := c.ShouldBindJSON(&report); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "report_too_large", "report body exceeds limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx := requestContext(c)
	data, err := h.Svc.Render(ctx, report)
	if err != nil {
		var invalid *model.InvalidReportError
		switch {
		case errors.As(err, &invalid):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid report", invalid.Fields)
		default:
			respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to generate report", nil)
		}
		return
	}

	respond.Attachment(c, render.FileName, render.ContentType, data)
}

func (h *Handler) discard(c *gin.Context) {
	ctx := requestContext(c)
	if err := h.Svc.Discard(ctx, middleware.SessionIDFromContext(c)); err != nil {
		h.lookupError(c, err, "failed to discard analysis")
		return
	}
	respond.NoContent(c)
}

func requestContext(c *gin.Context) context.Context {
	return WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
}

func (h *Handler) lookupError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "no analysis for this session", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
