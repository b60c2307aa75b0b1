package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-qrform/pkg/content"
	"github.com/goliatone/go-qrform/pkg/dispatcher"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// statusFor maps a build error onto an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, dispatcher.ErrMalformedRequest) {
		return http.StatusBadRequest
	}
	switch dispatcher.ErrorKind(err) {
	case dispatcher.KindNone:
		return http.StatusOK
	case dispatcher.KindValidation:
		return http.StatusUnprocessableEntity
	case dispatcher.KindUnknownType:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func describeError(err error) errorDetail {
	detail := errorDetail{Kind: dispatcher.ErrorKind(err).String(), Message: err.Error()}
	if errors.Is(err, dispatcher.ErrMalformedRequest) {
		detail.Kind = "malformed"
	}
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		detail.Field = verr.Field
		detail.Message = verr.Reason
	}
	return detail
}

func (s *Server) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", RequestIDFromContext(r.Context())).Msg("request failed")
	}
	s.json(w, status, errorBody{Error: describeError(err)})
}
