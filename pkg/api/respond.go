package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/assistant"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string         `json:"error"`
	Field string         `json:"field,omitempty"`
	Code  string         `json:"code,omitempty"`
	Extra map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, assistant.ErrEmptyPrompt):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, app.ErrBoatNotFound), errors.Is(err, app.ErrStopNotFound),
		errors.Is(err, app.ErrScheduleNotFound), errors.Is(err, app.ErrLogNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, app.ErrDeclined):
		return http.StatusPreconditionRequired, "confirmation_required"
	case errors.Is(err, assistant.ErrBusy):
		return http.StatusConflict, "busy"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	body := ErrorResponse{Error: err.Error(), Code: code}
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		body.Error = verr.Message
		body.Field = verr.Field
	}
	if status == http.StatusPreconditionRequired {
		body.Extra = map[string]any{"hint": "repeat the request with ?confirm=true"}
	}
	if status >= http.StatusInternalServerError {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: "invalid_input"})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// confirmed reads ?confirm=true into the request context so gated service
// calls can proceed without a prompt.
func confirmed(r *http.Request) *http.Request {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return r.WithContext(app.WithConfirmed(r.Context(), ok))
}
