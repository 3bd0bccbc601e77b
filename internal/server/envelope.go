package server

import (
	"encoding/json"
	"net/http"
)

// envelope is the shape of every JSON response: a success flag plus
// route-specific fields.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"success": false, "msg": msg})
}

// decodeLoose parses body as T, substituting the zero value when the body
// is not valid JSON. Handlers treat every field as possibly absent.
func decodeLoose[T any](body []byte) T {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		var zero T
		return zero
	}
	return v
}
