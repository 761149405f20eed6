// Package chat orchestrates one assistant turn end to end: history replay,
// the conversational completion, persistence of the updated transcript,
// title extraction from the reply, and resolution of the extracted titles
// into display records. A small set of trigger phrases bypasses the
// assistant entirely and answers with the catalog's now-playing listing.
package chat
