// Package llm is the model-provider layer behind SimLog's maintenance
// analysis. Every backend implements Provider; middleware adds request
// auditing, retries and a deadline.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a completion for a Request.
type Provider interface {
	// Generate sends the request and returns the model output. When the
	// request carries a Schema the returned Content has been validated
	// against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the model's role.
	System string

	// Messages is the conversation. SimLog sends a single user turn.
	Messages []Message

	// Schema, when set, asks the provider for JSON output conforming to it.
	// Without a Schema the response Content holds plain text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a one-turn conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "maintenance-brief". OpenAI uses it as the
	// response format name and the validator caches compiled schemas by it.
	Name string

	Description string

	Definition map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, as reported by the API.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the content as a string. A JSON string literal is unquoted;
// anything else is returned verbatim.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// checked validates content against the request schema, when set.
func checked(req Request, content json.RawMessage) (json.RawMessage, error) {
	if req.Schema == nil {
		return content, nil
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// resolveModel maps a short alias to a provider model id. Unknown names
// are passed through as ids.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
