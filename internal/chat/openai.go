package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are an assistant for a single HTTP API. Answer only from the
API summary document provided. If the document does not contain the
answer, say so. Keep answers short and concrete.`

// OpenAIAnswerer answers questions with an OpenAI chat model, grounded on
// the summary document.
type OpenAIAnswerer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnswerer creates an answerer for the given API key and model.
func NewOpenAIAnswerer(apiKey, model string) *OpenAIAnswerer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnswerer{client: openai.NewClient(apiKey), model: model}
}

func (a *OpenAIAnswerer) Answer(ctx context.Context, summaryDoc, question string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 512,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "API summary document:\n\n" + summaryDoc},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
