package rest

import (
	"net/http"

	"github.com/civhall/municipal-events/internal/transport/rest/response"
)

func Healthz(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
