package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultQianfanBaseURL = "https://qianfan.baidubce.com/v2"
	defaultTemperature    = 0.7
	defaultTimeout        = 60 * time.Second
)

// QianfanConfig holds configuration for the Qianfan roster provider.
type QianfanConfig struct {
	APIKey  string
	BaseURL string        // optional, defaults to the Qianfan v2 endpoint
	Timeout time.Duration // per-request timeout, defaults to 60s
}

// QianfanProvider implements Provider against Baidu Qianfan's
// OpenAI-compatible chat-completion endpoint. A single Generate call walks
// the model roster in priority order, starting from the last known-good
// model: a switchable failure advances to the next model, any other failure
// propagates immediately, and the first success pins the roster cursor to
// the model that served it.
//
// Models are tried strictly in sequence, never concurrently — two
// simultaneous successes with differing content would need arbitration this
// design does not provide. Total latency is bounded by roster size times
// the per-request timeout.
type QianfanProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	roster     *Roster
}

// NewQianfanProvider creates the roster-backed Qianfan provider.
func NewQianfanProvider(cfg QianfanConfig, roster *Roster) (*QianfanProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("qianfan API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultQianfanBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if roster == nil {
		roster = NewRoster(nil, nil)
	}
	return &QianfanProvider{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		roster:     roster,
	}, nil
}

// Roster exposes the provider's model roster.
func (p *QianfanProvider) Roster() *Roster { return p.roster }

// ModelID returns the model the next call will try first.
func (p *QianfanProvider) ModelID() string {
	return p.roster.Model(p.roster.CurrentIndex()).Model
}

func (p *QianfanProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	content, model, err := p.call(ctx, req, p.roster.CurrentIndex())
	if err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: model}, nil
}

// chatMessage is the wire format of one chat message.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire format of a chat-completion request.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

func buildChatMessages(req Request) []chatMessage {
	var msgs []chatMessage
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	return msgs
}

// call runs the failover loop from the given start index. It returns the
// extracted text and the model that produced it.
func (p *QianfanProvider) call(ctx context.Context, req Request, start int) (string, string, error) {
	msgs := buildChatMessages(req)
	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	var lastErr error
	n := p.roster.Len()

	for i := start; i < n; i++ {
		m := p.roster.Model(i)
		content, err := p.attempt(ctx, m.Model, msgs, temperature)
		if err == nil {
			// Next call resumes from the model that just worked.
			p.roster.SaveIndex(i)
			if i != start {
				log.WithField("model", m.Name).Debug("switched model")
			}
			return content, m.Model, nil
		}

		if Switchable(err) {
			lastErr = err
			if i < n-1 {
				log.WithFields(log.Fields{"model": m.Name, "error": err}).
					Warn("model failed, trying next")
				// Tentatively advance so an abandoned call still resumes
				// past the broken model.
				p.roster.SaveIndex(i + 1)
				continue
			}
			return "", "", &RosterExhaustedError{Last: lastErr}
		}

		// Non-switchable failures never justify further attempts.
		return "", "", err
	}

	return "", "", &RosterExhaustedError{Last: lastErr}
}

// attempt issues a single chat-completion request against one model.
func (p *QianfanProvider) attempt(ctx context.Context, model string, msgs []chatMessage, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("qianfan request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	if apiErr := extractAPIError(respBody); apiErr != nil {
		return "", apiErr
	}

	content, ok := extractContent(respBody)
	if !ok {
		return "", &MalformedResponseError{Body: string(respBody)}
	}
	return content, nil
}
