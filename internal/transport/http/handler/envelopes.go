package handler

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with. Logical failures are
// signalled by Success=false in the body; the HTTP status is always 200.
type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, msg string) {
	writeJSON(w, Response{Success: true, Message: msg})
}

func fail(w http.ResponseWriter, msg string) {
	writeJSON(w, Response{Success: false, Message: msg})
}
