package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openmol/drugforge/internal/config"
)

// Generator is the upstream generative-AI surface the handlers depend on.
// The REST implementation talks to the Gemini API; tests swap in MockGenerator.
type Generator interface {
	// GenerateContent sends one prompt and returns the full response text.
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// StreamGenerateContent sends one prompt and emits response text chunk by
	// chunk as the upstream produces them, returning the accumulated text.
	// Cancelling ctx aborts the upstream call.
	StreamGenerateContent(ctx context.Context, prompt string, emit func(chunk string) error) (string, error)
}

// GeminiClient implements Generator against the Gemini REST API.
type GeminiClient struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewGeminiClient creates a Gemini client from the loaded configuration.
func NewGeminiClient(cfg *config.Config) *GeminiClient {
	return &GeminiClient{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: 120 * time.Second,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiClient) endpoint(method string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s",
		strings.TrimRight(g.BaseURL, "/"), g.Model, method)
}

func (g *GeminiClient) newRequest(ctx context.Context, url, prompt string) (*http.Request, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", g.APIKey)
	return req, nil
}

// GenerateContent implements Generator.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req, err := g.newRequest(ctx, g.endpoint("generateContent"), prompt)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: g.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(raw))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}

	var sb strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// StreamGenerateContent implements Generator. The upstream delivers an SSE
// stream of partial responses; each text delta is passed to emit in order.
func (g *GeminiClient) StreamGenerateContent(ctx context.Context, prompt string, emit func(chunk string) error) (string, error) {
	req, err := g.newRequest(ctx, g.endpoint("streamGenerateContent")+"?alt=sse", prompt)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout here: the stream is bounded by ctx, which the caller
	// ties to the downstream connection.
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(raw))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk geminiResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return full.String(), fmt.Errorf("gemini error %d: %s", chunk.Error.Code, chunk.Error.Message)
		}
		for _, candidate := range chunk.Candidates {
			for _, part := range candidate.Content.Parts {
				if part.Text == "" {
					continue
				}
				full.WriteString(part.Text)
				if err := emit(part.Text); err != nil {
					return full.String(), err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("read stream: %w", err)
	}

	return full.String(), nil
}

// MockGenerator is a canned Generator for tests.
type MockGenerator struct {
	Response string
	Chunks   []string
	Err      error
}

// GenerateContent implements Generator.
func (m *MockGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// StreamGenerateContent implements Generator.
func (m *MockGenerator) StreamGenerateContent(_ context.Context, _ string, emit func(chunk string) error) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	var full strings.Builder
	chunks := m.Chunks
	if len(chunks) == 0 && m.Response != "" {
		chunks = []string{m.Response}
	}
	for _, chunk := range chunks {
		full.WriteString(chunk)
		if err := emit(chunk); err != nil {
			return full.String(), err
		}
	}
	return full.String(), nil
}
