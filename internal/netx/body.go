// Package netx holds HTTP request body helpers shared by API clients.
package netx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// ErrBodyTooLarge is returned by ReadLimited when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("response body too large")

// Field is one multipart form field.
type Field struct {
	Name  string
	Value string
}

// Multipart encodes fields as multipart/form-data in the given order and
// returns the body together with its Content-Type (boundary included).
func Multipart(fields []Field) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// JSON encodes v as a request body.
func JSON(v any) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return buf, nil
}

// ReadLimited reads at most limit bytes from r and fails if more are
// available.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrBodyTooLarge
	}
	return b, nil
}
