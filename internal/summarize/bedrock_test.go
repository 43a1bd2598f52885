package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/fmueller/distill/internal/config"
	"github.com/stretchr/testify/require"
)

type fakeBedrockAPI struct {
	input    *bedrockruntime.InvokeModelInput
	response string
	err      error
}

func (f *fakeBedrockAPI) InvokeModel(_ context.Context, in *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.response)}, nil
}

func testSettings() config.Settings {
	return config.Settings{
		Prompt: config.Prompt{Template: "Summarize the following transcript."},
		Model: config.Model{
			ModelID:     "anthropic.claude-3-sonnet-20240229-v1:0",
			MaxTokens:   2000,
			Temperature: 0.7,
			TopP:        0.9,
			TopK:        50,
		},
		Anthropic: config.Anthropic{
			Version: "bedrock-2023-05-31",
			System:  "You summarize meetings.",
		},
	}
}

func TestSummarizeBuildsMessagesRequest(t *testing.T) {
	t.Parallel()

	api := &fakeBedrockAPI{response: `{"content":[{"type":"text","text":"A short summary."}]}`}
	b := &Bedrock{client: api, settings: testSettings()}

	summary, err := b.Summarize(context.Background(), "spk_0: Hello there.")
	require.NoError(t, err)
	require.Equal(t, "A short summary.", summary)

	require.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", aws.ToString(api.input.ModelId))
	require.Equal(t, "application/json", aws.ToString(api.input.ContentType))
	require.Equal(t, "application/json", aws.ToString(api.input.Accept))

	var req messagesRequest
	require.NoError(t, json.Unmarshal(api.input.Body, &req))
	require.Equal(t, "bedrock-2023-05-31", req.AnthropicVersion)
	require.Equal(t, 2000, req.MaxTokens)
	require.Equal(t, "You summarize meetings.", req.System)
	require.Len(t, req.Messages, 1)
	require.Equal(t, "user", req.Messages[0].Role)
	require.Contains(t, req.Messages[0].Content[0].Text, "Summarize the following transcript.")
	require.Contains(t, req.Messages[0].Content[0].Text, "spk_0: Hello there.")
}

func TestSummarizeUnescapesLiteralNewlines(t *testing.T) {
	t.Parallel()

	api := &fakeBedrockAPI{response: `{"content":[{"type":"text","text":"First.\\nSecond."}]}`}
	b := &Bedrock{client: api, settings: testSettings()}

	summary, err := b.Summarize(context.Background(), "transcript")
	require.NoError(t, err)
	require.Equal(t, "First.\nSecond.", summary)
}

func TestSummarizePropagatesInvokeError(t *testing.T) {
	t.Parallel()

	api := &fakeBedrockAPI{err: errors.New("ThrottlingException")}
	b := &Bedrock{client: api, settings: testSettings()}

	_, err := b.Summarize(context.Background(), "transcript")
	require.ErrorContains(t, err, "ThrottlingException")
}

func TestSummarizeRejectsEmptyModelResponse(t *testing.T) {
	t.Parallel()

	api := &fakeBedrockAPI{response: `{"content":[]}`}
	b := &Bedrock{client: api, settings: testSettings()}

	_, err := b.Summarize(context.Background(), "transcript")
	require.ErrorContains(t, err, "no content")
}

func TestSummarizeRejectsMalformedModelResponse(t *testing.T) {
	t.Parallel()

	api := &fakeBedrockAPI{response: `not-json`}
	b := &Bedrock{client: api, settings: testSettings()}

	_, err := b.Summarize(context.Background(), "transcript")
	require.ErrorContains(t, err, "decode model response")
}
