package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"deepti.app/relay/internal/http/dto"
	"deepti.app/relay/internal/model"
)

const chatPath = "/api/chat"

// Transport delivers a conversation to the relay and returns its reply.
type Transport interface {
	Send(ctx context.Context, history model.History) (string, error)
}

// RelayError is a non-2xx answer from the relay. Message is what the user sees.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	return e.Message
}

type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTransport posts to <baseURL>/api/chat. A nil client uses http.DefaultClient,
// so no timeout is imposed beyond the HTTP stack's own.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		endpoint: strings.TrimSuffix(baseURL, "/") + chatPath,
		client:   client,
	}
}

func (t *HTTPTransport) Send(ctx context.Context, history model.History) (string, error) {
	body, err := json.Marshal(dto.ChatRequest{History: history})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp dto.ErrorResponse
		_ = json.Unmarshal(raw, &errResp)
		msg := errResp.Error
		if msg == "" {
			msg = model.ServerNoAnswer
		}
		return "", &RelayError{Status: resp.StatusCode, Message: msg}
	}

	var chatResp dto.ChatResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return "", fmt.Errorf("decoding relay response: %w", err)
	}
	return chatResp.Reply, nil
}
