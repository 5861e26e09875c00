package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/adapter/dto"
	"github.com/docbrief/docbrief/internal/usecase/export"
	"github.com/docbrief/docbrief/internal/usecase/summarize"
)

// Summaries handles summary history, download and deletion requests
type Summaries struct {
	service summarize.Service
	export  export.Service
	logger  *zap.Logger
}

// NewSummariesHandler creates a new summaries handler
func NewSummariesHandler(service summarize.Service, exportService export.Service, logger *zap.Logger) *Summaries {
	return &Summaries{
		service: service,
		export:  exportService,
		logger:  logger,
	}
}

// List handles GET /api/summaries
// @Summary      List summary history
// @Description  Returns the authenticated user's summaries, newest first
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Maximum records to return, up to 100"
// @Param        offset  query  int  false  "Records to skip"
// @Success      200  {object}  dto.ListSummariesResponse
// @Failure      401  {object}  map[string]interface{}  "User not authenticated"
// @Router       /summaries [get]
func (h *Summaries) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	limit := queryInt(c, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	summaries, total, err := h.service.List(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items := make([]dto.SummaryListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ToListItem(s))
	}

	return HandleSuccess(h.logger, c, dto.ListSummariesResponse{
		Summaries: items,
		Pagination: &dto.PaginationResponse{
			Limit:      limit,
			Offset:     offset,
			TotalItems: total,
		},
	})
}

// Get handles GET /api/summaries/:id
// @Summary      Get a summary
// @Description  Returns one summary owned by the authenticated user
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Summary ID"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{id} [get]
func (h *Summaries) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.FromSummary(summary))
}

// Download handles GET /api/summaries/:id/download
// @Summary      Download a summary
// @Description  Renders the summary as txt, pdf or docx and streams it as an attachment
// @Tags         Summaries
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id      path   string  true   "Summary ID"
// @Param        format  query  string  false  "Download format: txt, pdf or docx"  default(txt)
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]interface{}  "Unsupported format"
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{id}/download [get]
func (h *Summaries) Download(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	format := export.Format(c.QueryParam("format"))
	if format == "" {
		format = export.FormatTXT
	}
	if !format.IsValid() {
		return HandleError(h.logger, c, errors.ErrInvalidFormat(string(format)))
	}

	summary, err := h.service.Get(c.Request().Context(), userID, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	content, err := h.export.Export(summary, format)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileName := fmt.Sprintf("summary-%s.%s", summary.ID, format.Extension())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Blob(http.StatusOK, format.ContentType(), content)
}

// Delete handles DELETE /api/summaries/:id
// @Summary      Delete a summary
// @Description  Removes a summary and its archived source files, if any
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Summary ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Summary not found"
// @Router       /summaries/{id} [delete]
func (h *Summaries) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), userID, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"deleted": true,
		"id":      id,
	})
}
