package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zenithfinancial/portal/binder"
)

// ErrorBody is the JSON shape of every error response:
//
//	{"error":{"code":"user_not_found","message":"Not Found"}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the body of every JSON error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON renders v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as an ErrorBody. HTTPError values keep their status
// and key; binder failures become 400; anything else is a generic 500 so no
// internal detail reaches the client.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := errorToDetail(err)
	r := &jsonResponse{status: status, body: ErrorBody{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StatusOf returns the status JSONError would use for err.
func StatusOf(err error) int {
	status, _ := errorToDetail(err)
	return status
}

func errorToDetail(err error) (int, ErrorDetail) {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, ErrorDetail{Code: "unsupported_media_type", Message: http.StatusText(http.StatusUnsupportedMediaType)}
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery):
		return http.StatusBadRequest, ErrorDetail{Code: "invalid_request", Message: http.StatusText(http.StatusBadRequest)}
	default:
		return http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: "An error occurred processing your request"}
	}
}
