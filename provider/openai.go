package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/apiglot/apiglot"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates whole pages with an OpenAI chat model, for
// projects that do not go through the Apiglot API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate sends the extracted page and returns the model's translation.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if strings.TrimSpace(req.File.Content) == "" {
		return req.File.Content, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.File.Content},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &apiglot.ProviderError{Message: "OpenAI API call failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &apiglot.ProviderError{Message: "no response from OpenAI"}
	}

	out := stripCodeFence(resp.Choices[0].Message.Content)
	if strings.TrimSpace(out) == "" {
		return "", &apiglot.ProviderError{Message: "empty translation from OpenAI"}
	}
	return out, nil
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	source := languageName(req.Source)
	target := languageName(req.Target)

	return fmt.Sprintf(`# Role
You are an expert native translator localizing a web page from %s to %s.

# Input
The user message is the source of one Astro page (%s). It may start with a
frontmatter block between "---" lines, followed by HTML-like markup.

# Rules
- Translate only human-readable text: element text and the values of title, alt, placeholder and aria-label attributes.
- Keep the frontmatter block, imports, expressions in {curly braces}, tag names, class names, ids, URLs and component props exactly as they are.
- Keep the document structure, line breaks and indentation.
- Do not add explanations. Do not wrap the answer in Markdown code fences.

# Output
Return the complete page in %s.`, source, target, req.File.Name, target)
}

func languageName(l apiglot.Locale) string {
	if l.Name != "" {
		return l.Name
	}
	if name := apiglot.DisplayName(l.Code); name != "" {
		return name
	}
	return l.Code
}

// stripCodeFence removes a Markdown fence wrapped around the whole answer.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return s
	}
	body := strings.TrimSuffix(trimmed, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimRight(body[nl+1:], "\n")
}

var _ Translator = (*OpenAIProvider)(nil)
