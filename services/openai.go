package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// TextGenerator is the narrow contract the advice engine depends on. Any
// provider implementing "prompt in, text out" satisfies it; tests stub it.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// OpenAIService talks to a chat-completions endpoint. It is the system's
// only billed, latency-variable dependency, so calls are timeout-bound and
// retried with backoff on transient failures.
type OpenAIService struct {
	appContext.DefaultService

	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client

	maxRetries int
}

const OPENAI_SVC = "openai_svc"

func (svc OpenAIService) Id() string {
	return OPENAI_SVC
}

func (svc *OpenAIService) Configure(ctx *appContext.Context) error {
	svc.apiKey = os.Getenv("OPENAI_API_KEY")

	svc.baseURL = strings.TrimRight(os.Getenv("OPENAI_BASE_URL"), "/")
	if svc.baseURL == "" {
		svc.baseURL = "https://api.openai.com"
	}

	svc.model = os.Getenv("OPENAI_MODEL")
	if svc.model == "" {
		svc.model = "gpt-4o-mini"
	}

	timeoutSec := 30
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	svc.maxRetries = 2
	if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			svc.maxRetries = parsed
		}
	}

	svc.httpClient = &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}

	return svc.DefaultService.Configure(ctx)
}

func (svc *OpenAIService) Start() error {
	if svc.apiKey == "" {
		log.Warn("OPENAI_API_KEY not set; generation requests will fail and fall back to canned replies")
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *apiHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (svc *OpenAIService) Generate(ctx context.Context, system, user string) (string, error) {
	if svc.apiKey == "" {
		return "", errors.New("openai api key not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: svc.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= svc.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(jitterSleep(time.Duration(attempt) * time.Second)):
			}
		}

		text, err := svc.call(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			break
		}
		log.WithError(err).WithField("attempt", attempt+1).Warn("OpenAI call failed, retrying")
	}

	return "", lastErr
}

func (svc *OpenAIService) call(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &apiHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("malformed completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("completion response is empty")
	}
	return text, nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var httpErr *apiHTTPError
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode
		return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests ||
			(code >= 500 && code <= 599)
	}

	return false
}

func jitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	// +/- 20%
	delta := 0.2 * base.Seconds()
	low := base.Seconds() - delta
	v := low + rand.Float64()*(2*delta)
	return time.Duration(v * float64(time.Second))
}
