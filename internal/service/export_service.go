package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/dto"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/export"
	"github.com/noah-isme/district-dashboard-api/pkg/storage"
)

const exportPageSize = 100

// Export dataset names.
const (
	DatasetStudents      = "students"
	DatasetAtRisk        = "at-risk"
	DatasetTeachers      = "teachers"
	DatasetSchools       = "schools"
	DatasetInterventions = "interventions"
)

type exportEntities interface {
	School(id string) (models.School, bool)
	ListSchools(f models.EntityFilter) ([]models.School, int)
	ListTeachers(f models.EntityFilter) ([]models.Teacher, int)
	ListStudents(f models.EntityFilter) ([]models.Student, int)
}

type exportInterventions interface {
	List(f models.InterventionFilter) []models.Intervention
}

// presigner is implemented by object stores that can hand out direct links.
type presigner interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type expiringStore interface {
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService renders datasets, stores them and signs download tokens.
type ExportService struct {
	entities      exportEntities
	interventions exportInterventions
	store         storage.ObjectStore
	signer        *storage.SignedURLSigner
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
	cfg           ExportConfig
	now           func() time.Time
}

func NewExportService(entities exportEntities, interventions exportInterventions, store storage.ObjectStore, signer *storage.SignedURLSigner, cfg ExportConfig, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		entities:      entities,
		interventions: interventions,
		store:         store,
		signer:        signer,
		metrics:       metrics,
		validator:     validatorOrDefault(validate),
		logger:        logger,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Generate renders the requested dataset and returns a signed download link.
func (s *ExportService) Generate(ctx context.Context, req dto.ExportRequest) (*dto.ExportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid export payload")
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.SchoolID != "" {
		if _, ok := s.entities.School(req.SchoolID); !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
	}

	dataset := s.buildDataset(req.Dataset, req.SchoolID)
	payload, err := export.Render(format, dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	id := newID()
	key := s.buildKey(req.Dataset, id, format)
	if err := s.store.Save(ctx, key, format.ContentType(), payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(id, key)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
	}

	result := &dto.ExportResult{
		ID:          id,
		Dataset:     req.Dataset,
		Format:      string(format),
		Rows:        len(dataset.Rows),
		Storage:     s.store.Driver(),
		Token:       token,
		DownloadURL: fmt.Sprintf("%s/exports/%s", s.prefix(), token),
		ExpiresAt:   expiresAt,
	}
	if p, ok := s.store.(presigner); ok {
		direct, err := p.PresignGet(ctx, key, s.signer.TTL())
		if err != nil {
			s.logger.Warn("presign export failed", zap.String("key", key), zap.Error(err))
		} else {
			result.DirectURL = direct
		}
	}

	s.metrics.IncExport(req.Dataset, string(format))
	s.logger.Info("export generated",
		zap.String("export_id", id),
		zap.String("dataset", req.Dataset),
		zap.String("format", string(format)),
		zap.Int("rows", result.Rows),
	)
	return result, nil
}

// Download verifies token and returns the stored export.
func (s *ExportService) Download(ctx context.Context, token string) (*dto.ExportFile, error) {
	tok, err := s.signer.Verify(token)
	switch {
	case errors.Is(err, storage.ErrExpiredToken):
		return nil, appErrors.ErrTokenExpired
	case err != nil:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}

	rc, err := s.store.Open(ctx, tok.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	defer rc.Close() //nolint:errcheck

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export")
	}

	format, _ := export.ParseFormat(strings.TrimPrefix(path.Ext(tok.Key), "."))
	return &dto.ExportFile{
		Filename:    path.Base(tok.Key),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// Cleanup removes exports older than ttl when the store supports it.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	cleaner, ok := s.store.(expiringStore)
	if !ok {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return cleaner.CleanupOlderThan(ttl)
}

func (s *ExportService) prefix() string {
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return prefix
}

func (s *ExportService) buildKey(dataset, id string, format export.Format) string {
	stamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s_%s_%s.%s", dataset, strings.ReplaceAll(dataset, "-", "_"), stamp, id[:8], format)
}

func (s *ExportService) buildDataset(name, schoolID string) export.Dataset {
	switch name {
	case DatasetAtRisk:
		students := collectPages(s.entities.ListStudents, models.EntityFilter{SchoolID: schoolID, Status: string(models.StudentStatusAtRisk)})
		return s.studentDataset("At-Risk Students", students)
	case DatasetTeachers:
		return s.teacherDataset(collectPages(s.entities.ListTeachers, models.EntityFilter{SchoolID: schoolID}))
	case DatasetSchools:
		return s.schoolDataset(collectPages(s.entities.ListSchools, models.EntityFilter{}))
	case DatasetInterventions:
		return s.interventionDataset(s.interventions.List(models.InterventionFilter{}))
	default:
		return s.studentDataset("Students", collectPages(s.entities.ListStudents, models.EntityFilter{SchoolID: schoolID}))
	}
}

func (s *ExportService) schoolName(id string) string {
	if sc, ok := s.entities.School(id); ok {
		return sc.Name
	}
	return id
}

func (s *ExportService) studentDataset(title string, students []models.Student) export.Dataset {
	rows := make([]map[string]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, map[string]string{
			"ID":             st.ID,
			"Name":           st.Name,
			"School":         s.schoolName(st.SchoolID),
			"Grade":          strconv.Itoa(st.Grade),
			"GPA":            fmt.Sprintf("%.2f", st.GPA),
			"Attendance (%)": fmt.Sprintf("%.1f", st.Attendance),
			"Status":         string(st.Status),
		})
	}
	return export.Dataset{
		Title:   title,
		Headers: []string{"ID", "Name", "School", "Grade", "GPA", "Attendance (%)", "Status"},
		Rows:    rows,
	}
}

func (s *ExportService) teacherDataset(teachers []models.Teacher) export.Dataset {
	rows := make([]map[string]string, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, map[string]string{
			"ID":     t.ID,
			"Name":   t.Name,
			"School": s.schoolName(t.SchoolID),
			"Role":   t.Role,
			"Rating": fmt.Sprintf("%.1f", t.Rating),
			"Status": string(t.Status),
		})
	}
	return export.Dataset{
		Title:   "Teachers",
		Headers: []string{"ID", "Name", "School", "Role", "Rating", "Status"},
		Rows:    rows,
	}
}

func (s *ExportService) schoolDataset(schools []models.School) export.Dataset {
	rows := make([]map[string]string, 0, len(schools))
	for _, sc := range schools {
		rows = append(rows, map[string]string{
			"ID":              sc.ID,
			"Name":            sc.Name,
			"Principal":       sc.Principal,
			"Students":        strconv.Itoa(sc.StudentCount),
			"Teachers":        strconv.Itoa(sc.TeacherCount),
			"Performance (%)": fmt.Sprintf("%.1f", sc.Performance),
			"Attendance (%)":  fmt.Sprintf("%.1f", sc.Attendance),
			"Status":          string(sc.Status),
		})
	}
	return export.Dataset{
		Title:   "Schools",
		Headers: []string{"ID", "Name", "Principal", "Students", "Teachers", "Performance (%)", "Attendance (%)", "Status"},
		Rows:    rows,
	}
}

func (s *ExportService) interventionDataset(items []models.Intervention) export.Dataset {
	rows := make([]map[string]string, 0, len(items))
	for _, iv := range items {
		completed := ""
		if iv.CompletedAt != nil {
			completed = iv.CompletedAt.Format(time.RFC3339)
		}
		rows = append(rows, map[string]string{
			"ID":           iv.ID,
			"Type":         iv.Type.Label(),
			"Entity":       fmt.Sprintf("%s %s", iv.Target.Type, iv.Target.Name),
			"Status":       string(iv.Status),
			"Created At":   iv.CreatedAt.Format(time.RFC3339),
			"Completed At": completed,
		})
	}
	return export.Dataset{
		Title:   "Interventions",
		Headers: []string{"ID", "Type", "Entity", "Status", "Created At", "Completed At"},
		Rows:    rows,
	}
}

// collectPages walks a paginated listing until every match is collected.
func collectPages[T any](list func(models.EntityFilter) ([]T, int), f models.EntityFilter) []T {
	f.Page, f.PageSize = 1, exportPageSize
	out := []T{}
	for {
		items, total := list(f)
		out = append(out, items...)
		if len(items) == 0 || len(out) >= total {
			return out
		}
		f.Page++
	}
}
