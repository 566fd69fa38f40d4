// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Voronov

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/avoronov/notevault/internal/config"
	"github.com/avoronov/notevault/internal/logger"
)

// retryableStatuses is the fixed set of HTTP statuses classified as
// transient overload/unavailability. 403 is included because the upstream
// file API reports rate limiting through it.
var retryableStatuses = map[int]bool{
	http.StatusForbidden:           true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type httpObjectStore struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPObjectStore constructs an HTTP/REST implementation of
// [ObjectStore]. It normalises and validates the base URL from
// cfg.Address and configures the underlying client with the resolved base
// URL and request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPObjectStore(cfg config.Remote, log *logger.Logger) (ObjectStore, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpObjectStore{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func objectPath(name, folder string) string {
	return fmt.Sprintf("/api/folders/%s/files/%s", url.PathEscape(folder), url.PathEscape(name))
}

// Put implements [ObjectStore]. It PUTs data to the object path,
// overwriting any existing object of the same name.
func (h *httpObjectStore) Put(ctx context.Context, name, folder string, data []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(objectPath(name, folder))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", folder, name, err)
	}

	return classify(resp)
}

// Get implements [ObjectStore]. A 404 response maps to [ErrNotFound].
func (h *httpObjectStore) Get(ctx context.Context, name, folder string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(objectPath(name, folder))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", folder, name, err)
	}

	if err = classify(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Delete implements [ObjectStore]. A 404 response maps to [ErrNotFound].
func (h *httpObjectStore) Delete(ctx context.Context, name, folder string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete(objectPath(name, folder))
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", folder, name, err)
	}

	return classify(resp)
}

// errorPayload is the structured error body of the remote file API.
type errorPayload struct {
	Error struct {
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// classify maps a non-2xx response to the retry taxonomy. The retryable
// status set is checked before the error payload, so an overloaded server
// is retried even when it manages to attach a reason.
func classify(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	if code == http.StatusNotFound {
		return fmt.Errorf("%w: http 404", ErrNotFound)
	}

	if retryableStatuses[code] {
		return &Error{Kind: KindTransient, Status: code}
	}

	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		var payload errorPayload
		if err := json.Unmarshal(resp.Body(), &payload); err == nil && len(payload.Error.Errors) > 0 {
			return &Error{Kind: KindFatal, Status: code, Reason: payload.Error.Errors[0].Reason}
		}
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, body)
}
