package assistantService

import (
	"context"
	"errors"
	"io"
	"moodcam/internal/api/assistant"
	"moodcam/internal/entity"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply    string
	err      error
	prompts  []string
	deadline bool
}

func (m *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	_, m.deadline = ctx.Deadline()
	return m.reply, m.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var activityMood = entity.Mood{
	Kind:        entity.MoodKindActivity,
	Status:      "Live Person Detected!",
	Label:       "calm",
	Confidence:  72.25,
	Suggestions: []string{"Read a book", "Take a peaceful walk"},
}

func TestAskWithoutModel(t *testing.T) {
	svc := NewAssistantService(quietLogger(), nil, 0)

	assert.False(t, svc.Available())
	_, err := svc.Ask(context.Background(), activityMood, "hi")
	assert.ErrorIs(t, err, assistant.ErrAssistantUnavailable)
}

func TestAskReturnsModelText(t *testing.T) {
	model := &fakeModel{reply: "  take it easy  "}
	svc := NewAssistantService(quietLogger(), model, 0)

	text, err := svc.Ask(context.Background(), activityMood, "what now?")
	require.NoError(t, err)
	assert.Equal(t, "  take it easy  ", text)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "their question: what now?")
	assert.False(t, model.deadline)
}

func TestAskTimeout(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := NewAssistantService(quietLogger(), model, time.Second)

	_, err := svc.Ask(context.Background(), activityMood, "q")
	require.NoError(t, err)
	assert.True(t, model.deadline)
}

func TestAskModelFailure(t *testing.T) {
	svc := NewAssistantService(quietLogger(), &fakeModel{err: errors.New("quota exceeded")}, 0)

	_, err := svc.Ask(context.Background(), activityMood, "q")
	require.ErrorIs(t, err, assistant.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestBuildPromptActivity(t *testing.T) {
	prompt := BuildPrompt(activityMood, "How do I relax?")

	want := "Current user status: Live Person Detected!\n" +
		"Activity level: calm (confidence: 72.2%)\n" +
		"Suggested activities for this state:\n" +
		"Read a book, Take a peaceful walk\n\n\n" +
		"Based on the user's current activity level and their question: How do I relax?\n" +
		"Please provide a supportive response that:\n" +
		"1. Acknowledges their current state\n" +
		"2. Addresses their question\n" +
		"3. Suggests relevant activities based on their energy level\n" +
		"4. Offers encouragement and support\n" +
		"Make the response conversational but professional."
	assert.Equal(t, want, prompt)
}

func TestBuildPromptEmotion(t *testing.T) {
	prompt := BuildPrompt(entity.Mood{
		Kind:        entity.MoodKindEmotion,
		Label:       "sad",
		Confidence:  40,
		Suggestions: []string{"Call a friend"},
	}, "hello")

	assert.True(t, strings.HasPrefix(prompt, "Current emotion: sad (confidence: 40.0%)\n"))
	assert.Contains(t, prompt, "Call a friend\n\n\n")
	assert.Contains(t, prompt, "current emotional state and their question: hello\n")
	assert.NotContains(t, prompt, "Activity level")
}

func TestAskNormalizesQuestion(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc := NewAssistantService(quietLogger(), model, 0)

	_, err := svc.Ask(context.Background(), activityMood, "cafe\u0301?")
	require.NoError(t, err)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "their question: caf\u00e9?\n")
}
