package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const prompt = "Based on this text: %s. Return ONLY the artist's country of origin as an ISO 3166-1 alpha-2 country code, or the single character ? if it cannot be identified."

// Classifier infers an artist's country of origin from biography text using
// a chat completion model. Implements enrichment.CountryClassifier.
type Classifier struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewClassifier creates a new country classifier.
func NewClassifier(apiKey, model string, temperature float64, maxTokens int64) *Classifier {
	return &Classifier{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// CountryCode asks the model for the country of origin described by the
// summary. The answer is returned as-is apart from whitespace trimming;
// callers normalize before matching.
func (c *Classifier) CountryCode(ctx context.Context, summary string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(prompt, summary)),
		},
		Temperature:         openai.Float(c.temperature),
		MaxCompletionTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
