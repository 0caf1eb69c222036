package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-postadmin/internal/logging"
	"github.com/goliatone/go-postadmin/pkg/interfaces"
)

var (
	// ErrStoreUnavailable indicates the remote record store could not be reached.
	ErrStoreUnavailable = errors.New("posts: record store unavailable")
	// ErrStoreTimeout indicates the remote record store did not answer in time.
	ErrStoreTimeout = errors.New("posts: record store timeout")
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPStore talks to a remote record store over JSON REST.
type HTTPStore struct {
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

// HTTPStoreOption customizes an HTTPStore.
type HTTPStoreOption func(*HTTPStore)

// WithHTTPClient overrides the underlying http client.
func WithHTTPClient(client *http.Client) HTTPStoreOption {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithHTTPStoreLogger sets the store logger.
func WithHTTPStoreLogger(logger interfaces.Logger) HTTPStoreOption {
	return func(s *HTTPStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHTTPStore creates a store client against baseURL, e.g. "http://content-api:9300".
func NewHTTPStore(baseURL string, opts ...HTTPStoreOption) *HTTPStore {
	store := &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// List fetches up to limit records.
func (s *HTTPStore) List(ctx context.Context, limit int) ([]*Post, error) {
	endpoint := fmt.Sprintf("%s/posts", s.baseURL)
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}

	body, err := s.do(ctx, http.MethodGet, endpoint, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var records []*Post
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("posts: decode list response: %w", err)
	}
	return records, nil
}

// Create persists a new record and returns the stored representation.
func (s *HTTPStore) Create(ctx context.Context, draft *Post) (*Post, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("posts: encode create request: %w", err)
	}

	body, err := s.do(ctx, http.MethodPost, s.baseURL+"/posts", payload, http.StatusCreated, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return decodePost(body, "create")
}

// Update applies a patch to a record.
func (s *HTTPStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Post, error) {
	payload, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("posts: encode update request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/posts/%s", s.baseURL, id)
	body, err := s.do(ctx, http.MethodPatch, endpoint, payload, http.StatusOK)
	if err != nil {
		if isNotFoundStatus(err) {
			return nil, &NotFoundError{Resource: "post", Key: id.String()}
		}
		return nil, err
	}
	return decodePost(body, "update")
}

// Delete removes a record.
func (s *HTTPStore) Delete(ctx context.Context, id uuid.UUID) error {
	endpoint := fmt.Sprintf("%s/posts/%s", s.baseURL, id)
	_, err := s.do(ctx, http.MethodDelete, endpoint, nil, http.StatusNoContent, http.StatusOK)
	if err != nil && isNotFoundStatus(err) {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	return err
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("posts: record store responded with status %d", e.code)
}

func isNotFoundStatus(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

func (s *HTTPStore) do(ctx context.Context, method, endpoint string, payload []byte, accepted ...int) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("posts: build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("record store request failed", "method", method, "endpoint", endpoint, "error", err)
		if isTimeoutError(err) {
			return nil, ErrStoreTimeout
		}
		if isConnectionError(err) {
			return nil, ErrStoreUnavailable
		}
		return nil, ErrStoreUnavailable
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("posts: read response body: %w", err)
	}

	for _, code := range accepted {
		if resp.StatusCode == code {
			return body, nil
		}
	}

	s.logger.Error("record store request rejected", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
	return nil, &statusError{code: resp.StatusCode, body: string(body)}
}

func decodePost(body []byte, op string) (*Post, error) {
	var record Post
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("posts: decode %s response: %w", op, err)
	}
	return &record, nil
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "Timeout") ||
		strings.Contains(msg, "deadline exceeded")
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "i/o timeout")
}

var _ Store = (*HTTPStore)(nil)
