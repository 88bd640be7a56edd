package rest

import (
	"errors"
	"net/http"

	"github.com/civhall/municipal-events/internal/domain"
	appCtx "github.com/civhall/municipal-events/internal/pkg/context"
	"github.com/civhall/municipal-events/internal/transport/rest/response"
	zlog "github.com/rs/zerolog/log"
)

// handleErr maps domain outcomes to HTTP. Enrollment rejections are
// conflicts, not faults: the engine said no and the message is the
// engine's exact reason.
func handleErr(w http.ResponseWriter, r *http.Request, err error) {
	rid := appCtx.GetRequestID(r.Context())

	var ended *domain.EndedError
	if errors.As(err, &ended) {
		response.Fail(w, http.StatusConflict, "invalid_state", ended.Error(), nil, rid)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotYetConfirmed),
		errors.Is(err, domain.ErrAlreadyFinished),
		errors.Is(err, domain.ErrNotEnrollable):
		response.Fail(w, http.StatusConflict, "invalid_state", err.Error(), nil, rid)
		return
	case errors.Is(err, domain.ErrOrganizerConflict):
		response.Fail(w, http.StatusConflict, "forbidden", err.Error(), nil, rid)
		return
	case errors.Is(err, domain.ErrAlreadyEnrolled),
		errors.Is(err, domain.ErrNoCapacity),
		errors.Is(err, domain.ErrNotEnrolled):
		response.Fail(w, http.StatusConflict, "conflict", err.Error(), nil, rid)
		return
	}

	var app *domain.AppError
	if errors.As(err, &app) {
		switch app.Code {
		case domain.CodeValidation:
			response.Fail(w, http.StatusBadRequest, string(app.Code), app.Message, app.Meta, rid)
		case domain.CodeNotFound:
			response.Fail(w, http.StatusNotFound, string(app.Code), app.Message, app.Meta, rid)
		case domain.CodeForbidden:
			response.Fail(w, http.StatusForbidden, string(app.Code), app.Message, app.Meta, rid)
		case domain.CodeInvalidState:
			response.Fail(w, http.StatusConflict, string(app.Code), app.Message, app.Meta, rid)
		default:
			response.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", nil, rid)
		}
		return
	}

	zlog.Error().Err(err).Str("request_id", rid).Str("path", r.URL.Path).Msg("unhandled error")
	response.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", nil, rid)
}
