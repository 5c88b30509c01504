package handler

import (
	"net/http"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
)

// errorResponse sends the engine's error shape: a stable machine-readable
// code and a human-readable detail.
func errorResponse(w http.ResponseWriter, status int, code string, detail any) {
	env := envelope{
		"error":  code,
		"detail": detail,
	}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 400 with the per-field error map, so the
// client can point at the offending input.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusBadRequest, types.CodeInvalidInput, errors)
}

// badRequestResponse returns 400 BadRequest status.
func badRequestResponse(w http.ResponseWriter, detail any) {
	errorResponse(w, http.StatusBadRequest, types.CodeInvalidInput, detail)
}

// serviceErrorResponse maps a service error to its HTTP status and code.
func serviceErrorResponse(w http.ResponseWriter, err error) {
	status := GetCode(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		// never leak internals to the client
		detail = "the server encountered a problem and could not process your request"
	}

	errorResponse(w, status, types.ErrorCode(err), detail)
}
