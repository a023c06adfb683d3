package chat

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are WakaWeather AI Assistant, helping Pacific island users with friendly weather-related advice. " +
	"Be concise, kind, and weather-aware. If the question isn't about weather, still answer politely."

const fallbackReply = "Sorry, I'm having trouble answering that right now."

// Client forwards user messages to the OpenAI chat completion API.
type Client struct {
	api   *openai.Client
	model string
	log   *logrus.Logger
}

// NewClient creates a Client. An empty baseURL targets the public OpenAI
// API; tests point it at a local server. An empty model selects
// gpt-3.5-turbo.
func NewClient(apiKey, model, baseURL string, log *logrus.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		log:   log,
	}
}

// Reply sends the message and returns the assistant's answer. Upstream
// errors surface to the user as a fixed apology rather than an error.
func (c *Client) Reply(ctx context.Context, message string) string {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strings.TrimSpace(message)},
		},
	})
	if err != nil {
		c.log.Warnf("chat completion failed: %v", err)
		return fallbackReply
	}
	if len(resp.Choices) == 0 {
		c.log.Warn("chat completion returned no choices")
		return fallbackReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
