package completion

import "fmt"

// conversePrompt frames the assistant persona for conversational replies. Keep
// updates centralized here so it is easy to tweak without hunting through
// call sites.
const conversePrompt = `You are a helpful movie and TV recommendation assistant. Converse naturally, suggest specific titles when asked, and keep replies concise.`

// extractionPrompt captures the instructions for mining an assistant reply for
// media titles. The backend must answer with JSON only.
const extractionPrompt = `You are an expert text analyzer. Your task is to extract movie, TV show, anime movie, and anime series names from the chatbot response below.

Rules:

- Extract movie titles, including anime movies, if they exist.

- Extract TV show titles, including anime series, if they exist.

- If no movies, anime movies, TV shows, or anime series are found, return an empty list for both.

- Return only valid JSON output, with no extra text or explanations.

You must respond ONLY with a JSON object like: {"movies": ["Inception", "Your Name"], "tv_shows": ["Breaking Bad", "Attack on Titan"]}

Chatbot response to process:

%q

Extract and return ONLY the JSON.`

// ExtractionPrompt builds the extraction instruction embedding the assistant
// reply to analyze.
func ExtractionPrompt(assistantText string) string {
	return fmt.Sprintf(extractionPrompt, assistantText)
}
