package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxJSONBodySize caps the request body read by BindJSON.
const MaxJSONBodySize = 1 << 20

// BindJSON creates a JSON body binder.
//
// A missing Content-Type is read as JSON; any other media type is rejected
// with ErrUnsupportedMediaType. An empty body leaves v untouched so handlers
// can report missing fields themselves. Unknown fields are rejected.
func BindJSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
			}
		}
		if r.Body == nil || r.Body == http.NoBody {
			return nil
		}

		decoder := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBodySize))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
