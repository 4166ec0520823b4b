package httpx

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/model"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/screens"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

// ScreenHandlers serves the per-session screen state and actions.
type ScreenHandlers struct {
	Registry *screens.Registry
	Resolver *service.PermissionResolver
	Logger   *slog.Logger
}

// ScreenSummary describes one screen in the navigation.
type ScreenSummary struct {
	Slug    string            `json:"slug"`
	Module  string            `json:"module"`
	Title   string            `json:"title"`
	Actions viewmodel.Actions `json:"actions"`
}

func (h *ScreenHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// List returns the screens the session may view.
func (h *ScreenHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Auth(apperrors.MsgSessionExpired), nil)
		return
	}
	out := make([]ScreenSummary, 0)
	for _, d := range h.Registry.Definitions() {
		caps := h.Resolver.ForSession(*sess, d.Module)
		if !caps.CanView {
			continue
		}
		out = append(out, ScreenSummary{
			Slug:   d.Slug,
			Module: d.Module,
			Title:  d.Title,
			Actions: viewmodel.Actions{
				Create: caps.CanCreate,
				View:   caps.CanView,
				Edit:   caps.CanUpdate,
				Delete: caps.CanDelete,
			},
		})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"screens": out})
}

// Show opens the screen, applies ?q= when given and returns its state.
func (h *ScreenHandlers) Show(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error {
		if q, ok := r.URL.Query()["q"]; ok && len(q) > 0 {
			s.SetFilter(q[0])
		}
		return nil
	})
}

// Refresh re-fetches the list.
func (h *ScreenHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.Refresh(r.Context()) })
}

// Filter sets the list filter from the "q" form value.
func (h *ScreenHandlers) Filter(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error {
		s.SetFilter(r.FormValue("q"))
		return nil
	})
}

// OpenCreate opens the form modal on a blank draft.
func (h *ScreenHandlers) OpenCreate(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.OpenCreate() })
}

// OpenEdit opens the form modal on an existing record.
func (h *ScreenHandlers) OpenEdit(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.OpenEdit(r.Context(), pathID(r)) })
}

// OpenView opens the read-only view modal.
func (h *ScreenHandlers) OpenView(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.OpenView(r.Context(), pathID(r)) })
}

// ConfirmDelete opens the delete confirmation for a record.
func (h *ScreenHandlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.ConfirmDelete(pathID(r)) })
}

// Delete deletes the record awaiting confirmation.
func (h *ScreenHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.Delete(r.Context()) })
}

// Draft merges submitted fields into the form draft. It accepts a
// urlencoded form or a JSON object of strings.
func (h *ScreenHandlers) Draft(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct == "application/json" {
			var fields map[string]string
			if !DecodeJSON(w, r, &fields) {
				return errResponded
			}
			values := make(map[string][]string, len(fields))
			for k, v := range fields {
				values[k] = []string{v}
			}
			return s.SetDraft(values)
		}
		if err := r.ParseForm(); err != nil {
			return apperrors.Validation("The submitted form could not be read.")
		}
		return s.SetDraft(r.PostForm)
	})
}

// Submit creates or updates the draft.
func (h *ScreenHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error { return s.Submit(r.Context()) })
}

// CloseModal starts closing the named modal.
func (h *ScreenHandlers) CloseModal(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error {
		m, ok := s.Modal(r.PathValue("modal"))
		if !ok {
			return apperrors.NotFoundf("unknown modal %q", r.PathValue("modal"))
		}
		m.RequestClose()
		return nil
	})
}

// ModalExited completes a close once the exit animation finished.
func (h *ScreenHandlers) ModalExited(w http.ResponseWriter, r *http.Request) {
	h.withScreen(w, r, func(s screens.Handle) error {
		m, ok := s.Modal(r.PathValue("modal"))
		if !ok {
			return apperrors.NotFoundf("unknown modal %q", r.PathValue("modal"))
		}
		m.OnExited()
		return nil
	})
}

// errResponded marks an action that already wrote its response.
var errResponded = errors.New("response written")

// withScreen opens the session's screen, runs fn and writes the resulting state.
func (h *ScreenHandlers) withScreen(w http.ResponseWriter, r *http.Request, fn func(screens.Handle) error) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Auth(apperrors.MsgSessionExpired), nil)
		return
	}
	slug := r.PathValue("screen")
	if _, known := h.Registry.Definition(slug); !known {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "screen_not_found",
			Err:     errors.New("unknown screen " + slug),
		})
		return
	}

	s, err := h.Registry.Open(r.Context(), *sess, slug)
	if err != nil {
		h.writeScreenError(w, r, sess, err, nil)
		return
	}
	if err := fn(s); err != nil {
		if errors.Is(err, errResponded) {
			return
		}
		h.writeScreenError(w, r, sess, err, s)
		return
	}
	WriteJSON(w, http.StatusOK, s.State())
}

func (h *ScreenHandlers) writeScreenError(
	w http.ResponseWriter,
	r *http.Request,
	sess *domainauth.Session,
	err error,
	s screens.Handle,
) {
	var state any
	if s != nil {
		state = s.State()
	}
	if status, code, ok := controllerStatus(err); ok {
		WriteJSON(w, status, ErrorBody{Error: code, Message: err.Error(), State: state})
		return
	}
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger().WarnContext(r.Context(), "screen action failed",
			"screen", r.PathValue("screen"),
			"session_id", sess.ID,
			"error", err)
	}
	WriteAppError(w, err, state)
}

// controllerStatus maps the view-model's flow errors.
func controllerStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, viewmodel.ErrSubmitInFlight),
		errors.Is(err, viewmodel.ErrSubmitCooldown),
		errors.Is(err, viewmodel.ErrDeleteInFlight):
		return http.StatusTooManyRequests, "busy", true
	case errors.Is(err, viewmodel.ErrInvalidTransition),
		errors.Is(err, viewmodel.ErrNothingSelected),
		errors.Is(err, viewmodel.ErrClosed):
		return http.StatusConflict, "conflict", true
	default:
		return 0, "", false
	}
}

func pathID(r *http.Request) model.ID {
	return model.ID(r.PathValue("id"))
}
