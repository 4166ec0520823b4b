package viewmodel

import (
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
)

// Recorder receives controller outcomes for metrics.
type Recorder interface {
	ListRefreshed(module string, elapsed time.Duration, err error)
	FormSubmitted(module string, mode FormMode, elapsed time.Duration, err error)
	PermissionDenied(module string, action domainauth.Action)
}

type nopRecorder struct{}

func (nopRecorder) ListRefreshed(string, time.Duration, error)           {}
func (nopRecorder) FormSubmitted(string, FormMode, time.Duration, error) {}
func (nopRecorder) PermissionDenied(string, domainauth.Action)           {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
