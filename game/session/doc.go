// Package session provides in-memory session management.
//
// Core Types:
//
// Manager stores service.Session values, each owning its own engine.Game
// together with the board name and creation and last access times.
//
// Session Identifiers:
//
// Callers may choose an ID; otherwise the manager generates a UUID. IDs are
// case-insensitive and must not contain whitespace.
//
// Concurrency:
//
// The manager is safe for concurrent use. It guards its map only; the games
// inside sessions are serialised by the service layer.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", "classic", game)
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// Sessions are never persisted. CleanupExpiredSessions drops the ones that
// have not been touched within a given duration.
package session
