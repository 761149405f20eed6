// Package extraction parses the completion backend's structured output into
// ordered title lists.
//
// The brittleness of parsing LLM free text is contained behind the Parser
// interface with a defined failure type: StrictParser rejects anything that is
// not plain JSON, while TolerantParser additionally strips code fences and
// surrounding prose before parsing. A *ParseError carries the original
// assistant reply so the orchestrator can still deliver it to the user when
// this turn's extraction is lost.
package extraction
