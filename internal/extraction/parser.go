package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result holds the titles mined from one assistant reply. Order follows the
// backend's output; absent keys decode as empty lists.
type Result struct {
	Movies  []string `json:"movies"`
	TVShows []string `json:"tv_shows"`
}

// Empty reports whether no titles were extracted.
func (r Result) Empty() bool {
	return len(r.Movies) == 0 && len(r.TVShows) == 0
}

// ParseError reports malformed extraction output. It carries the assistant
// reply so the caller can still return it; the media enrichment is lost for
// this turn only.
type ParseError struct {
	Reply string
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse extraction output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser turns raw extraction output into a Result.
type Parser interface {
	Parse(raw, reply string) (Result, error)
}

// StrictParser accepts only plain JSON. No recovery is attempted: malformed
// output is a hard parse failure for the turn.
type StrictParser struct{}

func (StrictParser) Parse(raw, reply string) (Result, error) {
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Result{}, &ParseError{Reply: reply, Raw: raw, Err: err}
	}
	return result, nil
}

// TolerantParser strips code fences and surrounding prose before parsing,
// for backends that cannot be trusted to honor a JSON-only instruction.
type TolerantParser struct{}

func (TolerantParser) Parse(raw, reply string) (Result, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}, &ParseError{Reply: reply, Raw: raw, Err: fmt.Errorf("empty payload")}
	}

	var result Result
	directErr := json.Unmarshal([]byte(trimmed), &result)
	if directErr == nil {
		return result, nil
	}

	sanitized := sanitizeJSONPayload(trimmed)
	if sanitized == "" || sanitized == trimmed {
		return Result{}, &ParseError{Reply: reply, Raw: raw, Err: directErr}
	}
	if err := json.Unmarshal([]byte(sanitized), &result); err != nil {
		return Result{}, &ParseError{Reply: reply, Raw: raw, Err: err}
	}
	return result, nil
}

// ForMode returns the parser matching a config mode string. Unknown modes fall
// back to strict.
func ForMode(mode string) Parser {
	if strings.EqualFold(strings.TrimSpace(mode), "tolerant") {
		return TolerantParser{}
	}
	return StrictParser{}
}

func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFenceBlock(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFenceBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
		body = strings.TrimLeft(body, " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
