package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	appErrors "github.com/noah-isme/district-dashboard-api/pkg/errors"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
)

// scheduler is the subset of jobs.Scheduler the services use for simulated
// delays and playback.
type scheduler interface {
	After(d time.Duration, fn func()) *jobs.Handle
	Every(interval time.Duration, fn func()) *jobs.Handle
}

func validatorOrDefault(v *validator.Validate) *validator.Validate {
	if v == nil {
		return validator.New()
	}
	return v
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func newID() string {
	return uuid.NewString()
}

// requiredID trims raw and rejects a blank result.
func requiredID(raw, field string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, field+" must not be blank")
	}
	return id, nil
}
