package tester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/capripot/rswag/internal/request"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewHTTPRequest turns a built request into an *http.Request against serverURL
func NewHTTPRequest(ctx context.Context, req *request.Request, serverURL string) (*http.Request, error) {
	if req == nil {
		return nil, fmt.Errorf("request is nil")
	}

	body, contentType, err := encodePayload(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Verb, strings.TrimSuffix(serverURL, "/")+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range req.Headers {
		if strings.EqualFold(name, "Host") {
			httpReq.Host = value
			continue
		}
		httpReq.Header.Set(name, value)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", "rswag/1.0")
	}

	return httpReq, nil
}

// encodePayload serializes the form or body payload. The returned content
// type is non-empty only when it must replace the request's header, as for
// multipart boundaries.
func encodePayload(req *request.Request) (io.Reader, string, error) {
	contentType := strings.ToLower(req.ContentType())

	if req.Form != nil {
		if strings.HasPrefix(contentType, "multipart/form-data") {
			return encodeMultipart(req.Form)
		}
		values := url.Values{}
		for name, value := range req.Form {
			s, err := formValue(value)
			if err != nil {
				return nil, "", err
			}
			values.Set(name, s)
		}
		return strings.NewReader(values.Encode()), "", nil
	}

	switch body := req.Body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(body), "", nil
	case string:
		return strings.NewReader(body), "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "", nil
}

func encodeMultipart(form map[string]any) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(form))
	for name := range form {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := formValue(form[name])
		if err != nil {
			return nil, "", err
		}
		if err := w.WriteField(name, s); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// formValue renders scalars as text and structured values as JSON.
func formValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case map[string]any, []any:
		data, err := json.Marshal(val)
		return string(data), err
	}
	return fmt.Sprint(v), nil
}
