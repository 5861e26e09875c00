package handler

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/adapter/dto"
	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/internal/usecase/summarize"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/pdf"
)

// Summarize handles summarization and refinement HTTP requests
type Summarize struct {
	service summarize.Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewSummarizeHandler creates a new summarize handler
func NewSummarizeHandler(service summarize.Service, cfg *config.Config, logger *zap.Logger) *Summarize {
	return &Summarize{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// Create handles POST /api/summarize
// @Summary      Summarize uploaded PDFs
// @Description  Extracts text from one or more uploaded PDF files and generates a structured summary
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        files         formData  file    true   "PDF files to summarize"
// @Param        context_type  formData  string  false  "Audience context: executive, student, analyst or general"
// @Param        user_role     formData  string  false  "Reader role: student, researcher or professional"
// @Param        is_private    formData  bool    false  "Keep the upload out of long-term storage"
// @Success      200  {object}  dto.SummarizeResponse
// @Failure      400  {object}  map[string]interface{}  "No files, bad file type or invalid options"
// @Failure      401  {object}  map[string]interface{}  "User not authenticated"
// @Failure      500  {object}  map[string]interface{}  "Generation failed"
// @Router       /summarize [post]
func (h *Summarize) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	contextType := entities.ContextType(req.ContextType)
	if req.ContextType == "" {
		contextType = entities.ContextGeneral
	}
	userRole := entities.UserRole(req.UserRole)
	if req.UserRole == "" {
		userRole = entities.RoleProfessional
	}

	files, err := h.readUploads(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Summarize(c.Request().Context(), userID, summarize.Input{
		Files:       files,
		ContextType: contextType,
		UserRole:    userRole,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.SummarizeResponse{
		Summary:    dto.FromSummary(result.Summary),
		TotalPages: result.TotalPages,
		TotalChars: result.TotalChars,
	})
}

// Refine handles POST /api/summaries/:id/refine
// @Summary      Refine a summary
// @Description  Rewrites an existing summary with one of the supported actions or a custom focus area
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Summary ID"
// @Param        request  body      dto.RefineRequest  true  "Refinement action"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  map[string]interface{}  "Unknown action"
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{id}/refine [post]
func (h *Summarize) Refine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.RefineRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	action := entities.RefineAction(strings.ToLower(strings.TrimSpace(req.Action)))
	focusArea := strings.TrimSpace(req.FocusArea)
	if focusArea == "" && !action.IsValid() {
		return HandleError(h.logger, c, errors.ErrInvalidAction(req.Action))
	}

	summary, err := h.service.Refine(c.Request().Context(), userID, id, action, focusArea)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.FromSummary(summary))
}

// readUploads collects the uploaded PDFs, enforcing count, size and
// file type limits. Both "files" and "file" form keys are accepted.
func (h *Summarize) readUploads(c echo.Context) ([]pdf.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.ErrNoFiles()
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		return nil, errors.ErrNoFiles()
	}
	if len(headers) > h.cfg.Upload.MaxFiles {
		return nil, errors.ErrInvalidArgument("too many files")
	}

	files := make([]pdf.File, 0, len(headers))
	for _, header := range headers {
		if !isPDFUpload(header) {
			return nil, errors.ErrInvalidFileType(header.Filename)
		}
		if header.Size > h.cfg.Upload.MaxFileSize {
			return nil, errors.ErrFileTooLarge(header.Filename, h.cfg.Upload.MaxFileSize)
		}

		src, err := header.Open()
		if err != nil {
			return nil, errors.ErrPDFExtractionFailed(header.Filename, err)
		}
		content, err := io.ReadAll(io.LimitReader(src, h.cfg.Upload.MaxFileSize+1))
		src.Close()
		if err != nil {
			return nil, errors.ErrPDFExtractionFailed(header.Filename, err)
		}
		if int64(len(content)) > h.cfg.Upload.MaxFileSize {
			return nil, errors.ErrFileTooLarge(header.Filename, h.cfg.Upload.MaxFileSize)
		}

		files = append(files, pdf.File{
			Name:    filepath.Base(header.Filename),
			Content: content,
		})
	}

	return files, nil
}

func isPDFUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return true
	}
	contentType := header.Header.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}
