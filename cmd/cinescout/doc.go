// Command cinescout runs the recommendation service and its companion
// utilities: serve starts the HTTP API, config manages configuration,
// genres lists browsable genres, and resolve/recommend run one-shot
// catalog queries from the terminal.
package main
