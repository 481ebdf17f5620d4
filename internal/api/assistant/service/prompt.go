package assistantService

import (
	"fmt"
	"moodcam/internal/entity"
	"strings"
)

// BuildPrompt embeds the detected state and its suggestions ahead of the user's
// question, followed by instructions on the shape of the answer.
func BuildPrompt(mood entity.Mood, question string) string {
	var b strings.Builder

	switch mood.Kind {
	case entity.MoodKindEmotion:
		fmt.Fprintf(&b, "Current emotion: %s (confidence: %.1f%%)\n", mood.Label, mood.Confidence)
		b.WriteString("Suggested activities for this emotion:\n")
	default:
		fmt.Fprintf(&b, "Current user status: %s\n", mood.Status)
		fmt.Fprintf(&b, "Activity level: %s (confidence: %.1f%%)\n", mood.Label, mood.Confidence)
		b.WriteString("Suggested activities for this state:\n")
	}
	b.WriteString(strings.Join(mood.Suggestions, ", "))
	b.WriteString("\n\n\n")

	if mood.Kind == entity.MoodKindEmotion {
		fmt.Fprintf(&b, "Based on the user's current emotional state and their question: %s\n", question)
	} else {
		fmt.Fprintf(&b, "Based on the user's current activity level and their question: %s\n", question)
	}

	b.WriteString("Please provide a supportive response that:\n")
	b.WriteString("1. Acknowledges their current state\n")
	b.WriteString("2. Addresses their question\n")
	if mood.Kind == entity.MoodKindEmotion {
		b.WriteString("3. Suggests relevant activities based on their mood\n")
	} else {
		b.WriteString("3. Suggests relevant activities based on their energy level\n")
	}
	b.WriteString("4. Offers encouragement and support\n")
	b.WriteString("Make the response conversational but professional.")

	return b.String()
}
