package rest

import (
	"encoding/json"
	"net/http"
)

// Every response carries the same envelope:
// {"success": true, "data": ...} or {"success": false, "error": {"code", "message"}}.

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	response, _ := json.Marshal(map[string]interface{}{"success": true, "data": data})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	response, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": errorCode(status), "message": message},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondWithValidationError(errs map[string]string, w http.ResponseWriter) {
	response, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    "validation_failed",
			"message": "Invalid request payload",
			"fields":  errs,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(response)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal"
	}
}
