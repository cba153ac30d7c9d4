package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes data as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already written; nothing more we can do for the client.
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Error writes an error message wrapped in the standard error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}

// Success writes data with a 200 status.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
