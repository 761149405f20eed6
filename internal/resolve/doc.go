// Package resolve turns extracted titles into display-ready media records.
//
// Resolver is an at-least-effort aggregator: each title is searched in input
// order, unresolvable titles are logged and skipped, and one title's failure
// never aborts the batch. Recommender drives the title-based recommendation
// flow: search, top match, poster detail, then the related-titles listing.
package resolve
