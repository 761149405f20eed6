package chat

import "strings"

const latestReply = "Here are the latest released movies:"

var latestTriggers = []string{
	"latest movies",
	"newly released",
}

// isLatestTrigger reports whether the message asks for the now-playing
// listing rather than a conversational reply.
func isLatestTrigger(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range latestTriggers {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
