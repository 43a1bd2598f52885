package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/fmueller/distill/internal/config"
)

// Summarizer produces a prose summary of a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// bedrockAPI is the slice of the Bedrock runtime client the summarizer
// uses; tests substitute a fake.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Bedrock summarizes transcripts with a Bedrock-hosted model speaking the
// Anthropic Messages API. Switching to a model family with a different
// request body means changing messagesRequest.
type Bedrock struct {
	client   bedrockAPI
	settings config.Settings
}

func NewBedrock(cfg aws.Config, settings config.Settings) *Bedrock {
	return &Bedrock{
		client:   bedrockruntime.NewFromConfig(cfg),
		settings: settings,
	}
}

type messagesRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	System           string    `json:"system,omitempty"`
	Messages         []message `json:"messages"`
	Temperature      float64   `json:"temperature"`
	TopP             float64   `json:"top_p"`
	TopK             int       `json:"top_k"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

func (b *Bedrock) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := strings.TrimSpace(b.settings.Prompt.Template) + "\n\n" + transcript

	body, err := json.Marshal(messagesRequest{
		AnthropicVersion: b.settings.Anthropic.Version,
		MaxTokens:        b.settings.Model.MaxTokens,
		System:           b.settings.Anthropic.System,
		Messages: []message{{
			Role:    "user",
			Content: []contentBlock{{Type: "text", Text: prompt}},
		}},
		Temperature: b.settings.Model.Temperature,
		TopP:        b.settings.Model.TopP,
		TopK:        b.settings.Model.TopK,
	})
	if err != nil {
		return "", fmt.Errorf("encode model request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.settings.Model.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke model %s: %w", b.settings.Model.ModelID, err)
	}

	var resp messagesResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("model %s returned no content", b.settings.Model.ModelID)
	}

	// Some models emit literal \n sequences instead of newlines.
	return strings.ReplaceAll(resp.Content[0].Text, `\n`, "\n"), nil
}
