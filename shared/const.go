package shared

const (
	UserID = "user_id"

	// Assistant actions accepted by the /assistant endpoint.
	ActionTaskAdvice   = "TASK_ADVICE"
	ActionSummarize    = "SUMMARIZE"
	ActionGreeting     = "GREETING"
	ActionMoodResponse = "MOOD_RESPONSE"

	MoodGood    = "good"
	MoodNeutral = "neutral"
	MoodBad     = "bad"
)
