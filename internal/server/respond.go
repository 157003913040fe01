package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mindgeo/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode reads a JSON body into v and validates its struct tags.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError turns validator output into a single INVALID_INPUT error
// naming the first offending field.
func validationError(err error) error {
	var fields validator.ValidationErrors
	if !stderrors.As(err, &fields) || len(fields) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}
	f := fields[0]
	switch f.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidInput, "%s is required", f.Field())
	case "max", "lte":
		return errors.New(errors.ErrCodeInvalidInput, "%s must be at most %s", f.Field(), f.Param())
	case "gte", "min":
		return errors.New(errors.ErrCodeInvalidInput, "%s must be at least %s", f.Field(), f.Param())
	case "oneof":
		return errors.New(errors.ErrCodeInvalidInput, "%s must be one of: %s", f.Field(), f.Param())
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s is invalid", f.Field())
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSnapshot, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidNodeID, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	s.respondJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
