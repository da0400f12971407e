package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/easeaico/sticker-journal/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels records calls and replays a canned response.
type fakeModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls []fakeCall
}

type fakeCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls = append(f.calls, fakeCall{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func respondParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func promptOf(call fakeCall) string {
	var sb strings.Builder
	for _, c := range call.contents {
		for _, p := range c.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func newTestClient(f *fakeModels) *Client {
	return New(Config{APIKey: "test-key"}, f, nil)
}

func TestGeneratePrompts_MissingKey(t *testing.T) {
	f := &fakeModels{}
	c := New(Config{}, f, nil)

	_, err := c.GeneratePrompts(context.Background(), "sleepy")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Empty(t, f.calls, "no network call may be attempted")
}

func TestNewFromConfig_MissingKeyIsLazy(t *testing.T) {
	c, err := NewFromConfig(context.Background(), Config{}, nil)
	require.NoError(t, err)
	assert.False(t, c.Configured())

	_, _, err = c.GenerateAsset(context.Background(), "a cat", journal.KindSticker)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGeneratePrompts_Success(t *testing.T) {
	f := &fakeModels{resp: respondParts(genai.NewPartFromText(`["One?","Two?","Three?","Four?","Five?"]`))}
	c := newTestClient(f)

	prompts, err := c.GeneratePrompts(context.Background(), "cozy and rainy")
	require.NoError(t, err)
	assert.Equal(t, []string{"One?", "Two?", "Three?", "Four?", "Five?"}, prompts)

	require.Len(t, f.calls, 1)
	call := f.calls[0]
	assert.Equal(t, DefaultTextModel, call.model)
	assert.Contains(t, promptOf(call), `"cozy and rainy"`)
	require.NotNil(t, call.config)
	assert.Equal(t, "application/json", call.config.ResponseMIMEType)
	require.NotNil(t, call.config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, call.config.ResponseSchema.Type)
	assert.Equal(t, genai.TypeString, call.config.ResponseSchema.Items.Type)
}

func TestGeneratePrompts_NetworkFailureUsesFallback(t *testing.T) {
	f := &fakeModels{err: errors.New("connection reset by peer")}
	c := newTestClient(f)

	prompts, err := c.GeneratePrompts(context.Background(), "anxious")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"What was the highlight of your day?",
		"List three things you are grateful for.",
		"How did you feel when you woke up today?",
		"What is one goal you want to achieve tomorrow?",
		"Describe a moment that made you smile.",
	}, prompts)
}

func TestGeneratePrompts_BadBodies(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want []string
	}{
		{"nil response", nil, []string{EmptyResponsePrompt}},
		{"no candidates", &genai.GenerateContentResponse{}, []string{EmptyResponsePrompt}},
		{"blank text", respondParts(genai.NewPartFromText("  ")), []string{EmptyResponsePrompt}},
		{"empty array", respondParts(genai.NewPartFromText("[]")), []string{EmptyResponsePrompt}},
		{"not json", respondParts(genai.NewPartFromText("Here are some prompts")), FallbackPrompts()},
		{"wrong shape", respondParts(genai.NewPartFromText(`{"prompts":["a"]}`)), FallbackPrompts()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&fakeModels{resp: tt.resp})
			prompts, err := c.GeneratePrompts(context.Background(), "calm")
			require.NoError(t, err)
			assert.Equal(t, tt.want, prompts)
		})
	}
}

func TestFallbackPrompts_ReturnsCopy(t *testing.T) {
	p := FallbackPrompts()
	p[0] = "mutated"
	assert.Equal(t, "What was the highlight of your day?", FallbackPrompts()[0])
}

func TestGenerateAsset_InlineImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	f := &fakeModels{resp: respondParts(
		genai.NewPartFromText("Here is your sticker"),
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: png}},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{1}}},
	)}
	c := newTestClient(f)

	uri, ok, err := c.GenerateAsset(context.Background(), "a sleeping cat", journal.KindSticker)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Equal(t, DataURI("image/png", png), uri)

	require.Len(t, f.calls, 1)
	assert.Equal(t, DefaultImageModel, f.calls[0].model)
	assert.Contains(t, promptOf(f.calls[0]), "die-cut sticker of a sleeping cat")
}

func TestGenerateAsset_WashiStyle(t *testing.T) {
	f := &fakeModels{resp: respondParts()}
	c := New(Config{APIKey: "k", ImageModel: "custom-image"}, f, nil)

	_, ok, err := c.GenerateAsset(context.Background(), "strawberries", journal.KindWashi)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "custom-image", f.calls[0].model)
	assert.Contains(t, promptOf(f.calls[0]), "washi tape pattern with strawberries")
}

func TestGenerateAsset_NoImageIsAbsent(t *testing.T) {
	c := newTestClient(&fakeModels{resp: respondParts(genai.NewPartFromText("I cannot draw that"))})

	uri, ok, err := c.GenerateAsset(context.Background(), "a sleeping cat", journal.KindSticker)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, uri)
}

func TestGenerateAsset_FailurePropagates(t *testing.T) {
	cause := errors.New("quota exceeded")
	c := newTestClient(&fakeModels{err: cause})

	_, ok, err := c.GenerateAsset(context.Background(), "a sleeping cat", journal.KindSticker)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, cause)
}
