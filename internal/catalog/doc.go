// Package catalog provides the TMDB API client used for search, detail,
// recommendation, discovery, and now-playing lookups.
//
// Client is the raw HTTP layer: it authenticates requests, shapes the query
// string, and decodes the paginated results envelope; failures surface as
// errors, with *StatusError carrying non-200 responses. Lookup wraps Client
// with the call discipline the rest of the program relies on: a fixed pacing
// delay before every request, bounded fixed-delay retries for transport
// failures, no retries for HTTP status failures, and an explicit Outcome so
// callers can tell "no results" from "upstream broken" without inspecting
// errors. Options allow tests to supply custom HTTP clients, clocks, and
// sleepers.
package catalog
