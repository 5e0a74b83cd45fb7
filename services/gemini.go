package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIProvider is the narrow text-generation contract the engine consumes.
// Everything AI-assisted (extraction fallback, custom questions, fit scoring,
// document generation) goes through it.
type AIProvider interface {
	GenerateText(prompt, systemPrompt string) (string, error)
	IsAvailable() bool
}

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiService talks to the Gemini generateContent endpoint over plain HTTP.
type GeminiService struct {
	apiKey string
	model  string
	client *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  "gemini-1.5-pro",
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateText sends the prompt and returns the first candidate's text. The
// system prompt, when present, is prepended as its own turn.
func (s *GeminiService) GenerateText(prompt, systemPrompt string) (string, error) {
	if !s.IsAvailable() {
		return "", ErrAIUnavailable
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1/models/%s:generateContent?key=%s", s.model, s.apiKey)

	var contents []Content
	if systemPrompt != "" {
		contents = append(contents, Content{Role: "user", Parts: []Part{{Text: systemPrompt}}})
	}
	contents = append(contents, Content{Role: "user", Parts: []Part{{Text: prompt}}})

	jsonBody, err := json.Marshal(GeminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API error: %s", b)
	}

	var gemResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemResp); err != nil {
		return "", err
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no predictions returned")
	}

	return gemResp.Candidates[0].Content.Parts[0].Text, nil
}

// StripCodeFences removes a surrounding markdown code fence from a model
// response so the payload can be unmarshalled.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}
