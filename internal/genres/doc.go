// Package genres maps URL-friendly genre slugs to TMDB genre IDs.
//
// The tables are fixed: TMDB genre IDs are stable identifiers, not data worth
// fetching at runtime. Movie and TV use separate tables because TMDB assigns
// different IDs to the two media kinds (for example "western" is 37 in both,
// but TV has combined genres like sci_fi_fantasy that movies lack).
package genres
