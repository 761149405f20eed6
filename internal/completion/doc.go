// Package completion wraps the chat-completion backend used for both
// conversational replies and structured title extraction.
//
// The two entry points are deliberately independent calls: Converse produces
// the assistant reply from the full transcript, and ExtractTitles asks the
// same backend to mine that reply for movie and TV titles as JSON. Keeping
// them separate means an extraction failure never blocks delivering the reply.
// Neither call retries; completion failures surface to the orchestrator, which
// decides what degrades and what becomes an HTTP error.
package completion
