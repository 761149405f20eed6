// Package session persists per-caller conversation history for the chat
// assistant. Two backends implement the Store interface: MemoryStore keeps
// history in process memory with lazy TTL expiry, and SQLiteStore writes it
// to disk so sessions survive restarts. Both truncate stored history to the
// configured turn limit on write, and both implement Sweeper so a janitor
// loop can evict expired sessions in bulk.
package session
