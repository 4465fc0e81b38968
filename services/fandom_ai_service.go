// services/fandom_ai_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"minniemissions/models"
	"minniemissions/utils"
)

// ErrQuotaExceeded is surfaced to users as its own condition, distinct from
// generic upstream failures.
var ErrQuotaExceeded = errors.New("AI service quota exceeded")

const fandomSystemPromptTemplate = `You are a knowledgeable expert on music fandoms, fan culture, and artist communities.
Focus on providing accurate, respectful information about "%s", which is the fanbase of "%s".
Include relevant information about the fandom's history, notable moments, traditions, online presence, and community values.
Keep your answers concise (under 250 words), informative, and engaging.
If you don't have specific information about this fandom, provide general insights about similar fan communities while being transparent about limitations.
Do not make up false information or fabricate specific events that didn't happen.`

// FandomAIService forwards fandom questions to the OpenAI chat completions
// API. The service holds no state beyond its credentials; callers treat it
// as an opaque boundary that answers or errors.
type FandomAIService struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewFandomAIService(apiKey string) *FandomAIService {
	return &FandomAIService{
		BaseURL: "https://api.openai.com",
		APIKey:  apiKey,
		Client:  utils.HTTPClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Ask answers a question about a fandom. Quota exhaustion upstream maps to
// ErrQuotaExceeded; every other upstream failure comes back wrapped.
func (s *FandomAIService) Ask(ctx context.Context, fandom models.Fandom, question string) (string, error) {
	if s.APIKey == "" {
		return "", errors.New("missing OpenAI API key")
	}
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}

	payload := chatRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(fandomSystemPromptTemplate, fandom.Fanbase, fandom.Artist)},
			{Role: "user", Content: question},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.BaseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read OpenAI response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(strings.ToLower(msg), "quota") {
			return "", fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
		}
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("OpenAI returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
