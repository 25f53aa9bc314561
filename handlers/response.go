package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"fomezero/apperrors"
)

// WriteJSON writes a JSON response and returns any encoding error. Nothing is
// written when data cannot be encoded.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(append(body, '\n'))
	return err
}

// respond writes data with 200, or a 500 JSON error when data cannot be
// encoded.
func respond(w http.ResponseWriter, logger *zap.Logger, data any) {
	err := WriteJSON(w, http.StatusOK, data)
	if err == nil {
		return
	}
	var encErr *json.UnsupportedValueError
	var typeErr *json.UnsupportedTypeError
	if errors.As(err, &encErr) || errors.As(err, &typeErr) {
		logger.Error("Failed to encode response", zap.Error(err))
		ErrorResponse(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logger.Warn("Failed to write response", zap.Error(err))
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{"error": message})
}

// paramError is a malformed query parameter.
type paramError struct {
	param string
	msg   string
}

func (e *paramError) Error() string { return e.param + ": " + e.msg }

// fail maps err to a response: bad parameters are the caller's fault, data
// and source failures are ours.
func fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		ErrorResponse(w, http.StatusBadRequest, pe.Error())
		return
	}
	if errors.Is(err, apperrors.ErrData) {
		logger.Error("Invalid dataset", zap.Error(err))
	} else {
		logger.Error("Failed to load dataset", zap.Error(err))
	}
	ErrorResponse(w, http.StatusInternalServerError, err.Error())
}
