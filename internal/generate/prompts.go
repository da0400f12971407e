package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// EmptyResponsePrompt is returned when the model answers with an empty body.
const EmptyResponsePrompt = "Write about one good thing that happened today."

var fallbackPrompts = []string{
	"What was the highlight of your day?",
	"List three things you are grateful for.",
	"How did you feel when you woke up today?",
	"What is one goal you want to achieve tomorrow?",
	"Describe a moment that made you smile.",
}

// FallbackPrompts returns a copy of the fixed prompt set used when the
// service cannot be reached or answers with something unusable.
func FallbackPrompts() []string {
	out := make([]string, len(fallbackPrompts))
	copy(out, fallbackPrompts)
	return out
}

var promptInstructionTmpl = template.Must(template.New("prompts").Parse(`
The user is a beginner at journaling. Their current mood/context is: {{printf "%q" .Mood}}.
Provide exactly 5 short, engaging, and easy-to-answer journaling prompts (head points) to help them start writing about their day.
Keep the tone warm, nostalgic, and encouraging.
Return the response as a JSON array of strings.
`))

func buildPromptInstruction(mood string) string {
	var buf bytes.Buffer
	_ = promptInstructionTmpl.Execute(&buf, struct{ Mood string }{Mood: mood})
	return buf.String()
}

var promptSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

// GeneratePrompts asks for five journaling prompts matching the mood.
// The only error it returns is ErrConfiguration; every other failure is
// logged and answered with FallbackPrompts.
func (c *Client) GeneratePrompts(ctx context.Context, mood string) ([]string, error) {
	if err := c.checkConfigured(); err != nil {
		return nil, err
	}

	resp, err := c.models.GenerateContent(ctx, c.textModel, genai.Text(buildPromptInstruction(mood)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   promptSchema,
		})
	if err != nil {
		c.log.Warn("Prompt generation failed, using fallback prompts", zap.Error(err))
		return FallbackPrompts(), nil
	}

	body := ""
	if resp != nil {
		body = strings.TrimSpace(resp.Text())
	}
	if body == "" {
		return []string{EmptyResponsePrompt}, nil
	}

	var prompts []string
	if err := json.Unmarshal([]byte(body), &prompts); err != nil {
		c.log.Warn("Prompt response did not match schema, using fallback prompts",
			zap.Error(err), zap.Int("bodyLength", len(body)))
		return FallbackPrompts(), nil
	}
	if len(prompts) == 0 {
		return []string{EmptyResponsePrompt}, nil
	}
	return prompts, nil
}
