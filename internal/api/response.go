package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// errorDetail is the error envelope: {"detail": "..."}.
type errorDetail struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorDetail{Detail: detail})
}
