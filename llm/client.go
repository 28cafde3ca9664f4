/*
Package llm provides the chat backend for the financial education
assistant.

PURPOSE:
  Assembles the full prompt (system or module persona, topic context,
  flattened conversation history, the new user message) and posts it to a
  text-generation endpoint. The transport is the Ollama-style generate
  API: {"model", "prompt", "stream": false} in, {"response", "done"} out.

ERROR HANDLING:
  Transport failures, non-200 statuses, and undecodable bodies surface as
  errors; the caller decides the user-facing fallback text. The client
  never retries.

SEE ALSO:
  - prompts.go: persona and module prompt content
  - api/chat.go: HTTP surface over this client
*/
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Role tags one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of chat history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client talks to a text-generation endpoint.
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewClient creates a client for the given endpoint and model.
func NewClient(endpoint, model string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateFinancialResponse answers a user message with optional
// conversation history and learning-module topic context.
func (c *Client) GenerateFinancialResponse(ctx context.Context, message string, history []Message, topic string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("llm: empty message")
	}
	return c.generate(ctx, c.buildPrompt(message, history, topic))
}

// ExplainTopic produces a structured explanation of one financial topic
// at the requested depth (beginner, intermediate, advanced).
func (c *Client) ExplainTopic(ctx context.Context, topic, level string) (string, error) {
	levelPrompts := map[string]string{
		"beginner":     "Explain this as if I have no financial knowledge",
		"intermediate": "I understand basic financial concepts",
		"advanced":     "I have good financial knowledge, give me detailed insights",
	}
	levelLine, ok := levelPrompts[level]
	if !ok {
		levelLine = levelPrompts["beginner"]
	}

	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\nUser Level: ")
	b.WriteString(levelLine)
	b.WriteString("\n\nPlease explain the following financial topic: ")
	b.WriteString(topic)
	b.WriteString("\n\nProvide:\n1. A clear definition\n2. Why it's important\n3. A simple example\n4. Common misconceptions\n5. Actionable first steps")

	return c.generate(ctx, b.String())
}

// buildPrompt flattens persona, topic context, and history into one
// generate-API prompt.
func (c *Client) buildPrompt(message string, history []Message, topic string) string {
	var b strings.Builder
	b.WriteString(ModulePrompt(topic))

	if topic != "" {
		fmt.Fprintf(&b, "\n\n### CURRENT MODULE CONTEXT\nUser is in the %q learning module. Focus responses on this topic area and redirect off-topic questions appropriately.\n\n", topic)
	} else {
		b.WriteString("\n\n")
	}

	b.WriteString("Conversation History:\n")
	for _, msg := range history {
		label := "Assistant"
		if msg.Role == RoleUser {
			label = "User"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}

	b.WriteString("\nUser: ")
	b.WriteString(message)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("llm: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: failed to call generate endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return "", fmt.Errorf("llm: generate endpoint returned status %d: %s", resp.StatusCode, string(detail))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("llm: failed to decode response: %w", err)
	}
	return genResp.Response, nil
}
