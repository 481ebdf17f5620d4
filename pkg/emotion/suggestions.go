package emotion

var suggestions = map[Label][]string{
	Happy: {
		"Share your joy with others",
		"Try something creative",
		"Plan something exciting",
		"Express gratitude",
		"Spread positivity",
	},
	Sad: {
		"Reach out to a friend",
		"Take a short walk outside",
		"Write down how you feel",
		"Listen to uplifting music",
		"Be kind to yourself today",
	},
	Surprised: {
		"Take a moment to process",
		"Write down what surprised you",
		"Share the news with someone",
		"Explore something new",
		"Stay curious",
	},
	Angry: {
		"Take a few deep breaths",
		"Step away for a moment",
		"Try a quick workout",
		"Count slowly to ten",
		"Talk it through with someone",
	},
	Fearful: {
		"Ground yourself with slow breathing",
		"Name five things you can see",
		"Talk to someone you trust",
		"Break the problem into small steps",
		"Remind yourself you are safe",
	},
	Neutral: {
		"Set new goals",
		"Learn something new",
		"Connect with friends",
		"Organize your space",
		"Start a new hobby",
	},
}

// Suggestions returns a copy of the list for label, falling back to the neutral list.
func Suggestions(label Label) []string {
	list, ok := suggestions[label]
	if !ok {
		list = suggestions[Neutral]
	}

	out := make([]string, len(list))
	copy(out, list)
	return out
}
