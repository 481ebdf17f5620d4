package liveness

var suggestions = map[Activity][]string{
	ActivityActive: {
		"Channel your energy positively",
		"Take on a challenge",
		"Exercise or dance",
		"Start a project",
		"Join group activities",
	},
	ActivityHappy: {
		"Share your joy with others",
		"Try something creative",
		"Plan something exciting",
		"Express gratitude",
		"Spread positivity",
	},
	ActivityNeutral: {
		"Set new goals",
		"Learn something new",
		"Connect with friends",
		"Organize your space",
		"Start a new hobby",
	},
	ActivityCalm: {
		"Practice mindfulness",
		"Read a book",
		"Listen to soothing music",
		"Take a peaceful walk",
		"Try gentle stretching",
	},
}

// Suggestions returns a copy of the suggestion list for activity, falling back to
// the neutral list for unknown labels.
func Suggestions(activity Activity) []string {
	list, ok := suggestions[activity]
	if !ok {
		list = suggestions[ActivityNeutral]
	}

	out := make([]string, len(list))
	copy(out, list)
	return out
}
