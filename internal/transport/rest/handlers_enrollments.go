package rest

import (
	"net/http"

	"github.com/civhall/municipal-events/internal/application/enrollment"
	"github.com/civhall/municipal-events/internal/domain"
	appCtx "github.com/civhall/municipal-events/internal/pkg/context"
	"github.com/civhall/municipal-events/internal/transport/rest/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EnrollmentHandler struct {
	svc *enrollment.Service
}

func NewEnrollmentHandler(svc *enrollment.Service) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc}
}

func eventIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "validation_error", "event id must be a UUID",
			nil, appCtx.GetRequestID(r.Context()))
		return uuid.Nil, false
	}
	return id, true
}

func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Enroll(r.Context(), eventID, auth.UserID)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, rec)
}

func (h *EnrollmentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Withdraw(r.Context(), eventID, auth.UserID); err != nil {
		handleErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EnrollmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Availability(r.Context(), eventID)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, a)
}

type pagedEnrollments struct {
	Items    []domain.Enrollment `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

func (h *EnrollmentHandler) Participants(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	items, total, err := h.svc.ListParticipants(r.Context(), eventID, auth.UserID, auth.Role, page, pageSize)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Enrollment{}
	}
	response.Data(w, http.StatusOK, pagedEnrollments{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (h *EnrollmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	items, total, err := h.svc.ListMine(r.Context(), auth.UserID, page, pageSize)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	if items == nil {
		items = []domain.Enrollment{}
	}
	response.Data(w, http.StatusOK, pagedEnrollments{Items: items, Total: total, Page: page, PageSize: pageSize})
}
