package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

var ErrAPIKeyMissing = errors.New("openai API key is required")

type IChatGPT interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT(apiKey, model string) (IChatGPT, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if model == "" {
		model = openai.GPT4
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *chatGPTService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *chatGPTService) Close() error {
	return nil
}
