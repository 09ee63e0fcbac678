package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes limits how much of a client body the gateway reads.
const MaxRequestBodyBytes = 1 << 20

// ErrInvalidBody is returned when a request body is not a JSON object.
var ErrInvalidBody = errors.New("request body must be a JSON object")

// DecodeJSONObject reads the request body and decodes it as a JSON object.
// It returns the decoded fields and the raw bytes so handlers can forward
// the body exactly as received. An empty body decodes to an empty object.
func DecodeJSONObject(r *http.Request) (map[string]any, []byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodyBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(raw) > MaxRequestBodyBytes {
		return nil, nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, MaxRequestBodyBytes)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, []byte("{}"), nil
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if fields == nil {
		return nil, nil, fmt.Errorf("%w: got null", ErrInvalidBody)
	}
	return fields, raw, nil
}
