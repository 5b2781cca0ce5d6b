package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akeren/consent-intake/internal/log"
)

const DefaultSubmitTimeout = 15 * time.Second

// Submitter delivers one finished record to the registration endpoint.
type Submitter interface {
	Submit(ctx context.Context, record Record) error
}

// ResponseError is returned when the endpoint answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("submit failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("submit failed with status %d: %s", e.StatusCode, e.Message)
}

type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter posts records as JSON to endpoint, typically
// http://host:8080/api/submit. A nil client gets DefaultSubmitTimeout. Every
// request carries a correlation id so server logs can be matched to it.
func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: DefaultSubmitTimeout}
	}

	traced := *client
	traced.Transport = log.NewCorrelationTransport(client.Transport)

	return &HTTPSubmitter{endpoint: endpoint, client: &traced}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)

	return &ResponseError{StatusCode: resp.StatusCode, Message: payload.Error}
}
