package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError answers in the same {"error": ...} shape as the REST handlers.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}
