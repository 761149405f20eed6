// Package server exposes the chat assistant, genre browsing, and
// recommendation flows as a JSON HTTP API. Responses are always JSON;
// errors use a single {"error": "..."} shape. Sessions are keyed by the
// caller's network origin.
package server
