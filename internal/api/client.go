package api

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
	"github.com/sirupsen/logrus"

	"github.com/brokeneck/brokeneck/cli/internal/logging"
)

// GraphQLPath is where the backend serves its GraphQL endpoint.
const GraphQLPath = "/graphql"

// Client wraps GraphQL calls to the brokeneck server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a new API client.
func NewClient(baseURL, apiKey string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
		log: logging.Discard(),
	}
}

// SetAPIKey updates the bearer token used for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// SetLogger sets the logger used for request tracing.
func (c *Client) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		c.log = log
	}
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	clone := NewClient(c.baseURL, c.apiKey, timeout)
	clone.log = c.log
	return clone
}

type graphQLRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// do executes a GraphQL operation and decodes its data into out.
func (c *Client) do(ctx context.Context, doc Document, vars map[string]any, out any) error {
	payload, err := json.Marshal(graphQLRequest{
		OperationName: doc.Name,
		Query:         doc.Text,
		Variables:     vars,
	})
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GraphQLPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.WithFields(logrus.Fields{"op": doc.Name, "request_id": requestID})
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return &Error{Op: doc.Name, Messages: []string{err.Error()}, kind: ErrNetwork}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: doc.Name, Status: resp.StatusCode, Messages: []string{"read response: " + err.Error()}, kind: ErrNetwork}
	}
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(started)}).Debug("graphql response")

	var envelope graphQLResponse
	decodeErr := json.Unmarshal(respBody, &envelope)

	if resp.StatusCode >= 400 {
		if decodeErr == nil && len(envelope.Errors) > 0 {
			return newGraphQLError(doc.Name, resp.StatusCode, envelope.Errors)
		}
		return &Error{
			Op:       doc.Name,
			Status:   resp.StatusCode,
			Messages: []string{fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))},
			kind:     kindForStatus(resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if len(envelope.Errors) > 0 {
		return newGraphQLError(doc.Name, resp.StatusCode, envelope.Errors)
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
