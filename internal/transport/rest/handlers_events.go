package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/civhall/municipal-events/internal/application/event"
	"github.com/civhall/municipal-events/internal/domain"
	appCtx "github.com/civhall/municipal-events/internal/pkg/context"
	"github.com/civhall/municipal-events/internal/transport/rest/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type EventHandler struct {
	svc *event.Service
}

func NewEventHandler(svc *event.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

type createEventRequest struct {
	Name         string           `json:"name"`
	StartDate    string           `json:"start_date"`
	DurationDays int              `json:"duration_days"`
	Organizers   []uuid.UUID      `json:"organizers"`
	Kind         domain.EventKind `json:"kind"`
	Details      json.RawMessage  `json:"details"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())
	rid := appCtx.GetRequestID(r.Context())

	var req createEventRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "validation_error", "malformed JSON body", nil, rid)
		return
	}
	if !req.Kind.Valid() {
		response.Fail(w, http.StatusBadRequest, "validation_error", "unknown event kind", nil, rid)
		return
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD", nil, rid)
		return
	}

	details, err := domain.UnmarshalDetails(req.Kind, req.Details)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "validation_error", "malformed details payload", nil, rid)
		return
	}

	e, err := h.svc.Create(r.Context(), event.CreateCmd{
		ActorID:      auth.UserID,
		ActorRole:    auth.Role,
		Name:         req.Name,
		StartDate:    start,
		DurationDays: req.DurationDays,
		Organizers:   req.Organizers,
		Details:      details,
	})
	if err != nil {
		handleErr(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, e)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, e)
}

type pagedEvents struct {
	Items    []*domain.Event `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	f := event.ListFilter{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}
	if v := r.URL.Query().Get("kind"); v != "" {
		k := domain.EventKind(v)
		if !k.Valid() {
			response.Fail(w, http.StatusBadRequest, "validation_error", "unknown event kind",
				nil, appCtx.GetRequestID(r.Context()))
			return
		}
		f.Kind = &k
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			response.Fail(w, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD",
				nil, appCtx.GetRequestID(r.Context()))
			return
		}
		f.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			response.Fail(w, http.StatusBadRequest, "validation_error", "to must be YYYY-MM-DD",
				nil, appCtx.GetRequestID(r.Context()))
			return
		}
		f.To = &t
	}

	items, total, err := h.svc.ListPublic(r.Context(), f)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.Event{}
	}
	response.Data(w, http.StatusOK, pagedEvents{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize})
}

func (h *EventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	auth, _ := GetAuth(r.Context())

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)
	items, total, err := h.svc.ListMine(r.Context(), auth.UserID, page, pageSize)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	if items == nil {
		items = []*domain.Event{}
	}
	response.Data(w, http.StatusOK, pagedEvents{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (h *EventHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Confirm)
}

func (h *EventHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Start)
}

func (h *EventHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Finish)
}

func (h *EventHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id string, actorID uuid.UUID, actorRole string) (*domain.Event, error),
) {
	auth, _ := GetAuth(r.Context())
	e, err := apply(r.Context(), chi.URLParam(r, "id"), auth.UserID, auth.Role)
	if err != nil {
		handleErr(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, e)
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
