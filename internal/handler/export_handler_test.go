package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
)

type fakeExportSrv struct {
	lastReq dto.ExportRequest
}

func (f *fakeExportSrv) Generate(_ context.Context, req dto.ExportRequest) (*dto.ExportResult, error) {
	f.lastReq = req
	if req.Dataset == "planets" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid export request")
	}
	return &dto.ExportResult{ID: "exp-1", Dataset: req.Dataset, Format: "csv", Token: "tok", DownloadURL: "/api/v1/exports/tok"}, nil
}

func (f *fakeExportSrv) Download(_ context.Context, token string) (*dto.ExportFile, error) {
	switch token {
	case "tok":
		return &dto.ExportFile{Filename: "students_20240603_080000_abcd1234.csv", ContentType: "text/csv", Body: []byte("ID,Name\n")}, nil
	case "old":
		return nil, appErrors.ErrTokenExpired
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
}

func exportRouter(srv *fakeExportSrv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(srv)
	r := gin.New()
	r.POST("/exports", h.Generate)
	r.GET("/exports/:token", h.Download)
	return r
}

func TestExportHandlerGenerate(t *testing.T) {
	srv := &fakeExportSrv{}
	r := exportRouter(srv)

	rec := send(r, http.MethodPost, "/exports", `{"dataset":"students","schoolId":"s1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "s1", srv.lastReq.SchoolID)

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/exports", `{"dataset":"planets"}`).Code)
}

func TestExportHandlerDownload(t *testing.T) {
	r := exportRouter(&fakeExportSrv{})

	rec := send(r, http.MethodGet, "/exports/tok", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="students_20240603_080000_abcd1234.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID,Name\n", rec.Body.String())

	assert.Equal(t, http.StatusGone, send(r, http.MethodGet, "/exports/old", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/exports/bogus", "").Code)
}
