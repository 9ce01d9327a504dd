package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, req dto.ExportRequest) (*dto.ExportResult, error)
	Download(ctx context.Context, token string) (*dto.ExportFile, error)
}

// ExportHandler renders datasets and serves signed downloads.
type ExportHandler struct {
	exports exportService
}

func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Generate godoc
// @Summary Export a dataset
// @Description Renders students, at-risk, teachers, schools or interventions as csv, pdf or xlsx.
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Generate(c *gin.Context) {
	var req dto.ExportRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.exports.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.exports.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
