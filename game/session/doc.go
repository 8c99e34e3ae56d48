// Package session provides in-memory session management for the Snakes and Ladders server.
//
// Manager stores one service.Session per game: the engine.Game itself, the tier
// it was started from, the seed of its random source and its access times.
// Session IDs are the first eight hex characters of a random UUID and are
// matched case-insensitively.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", game, "Easy", seed)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Finished games stay readable until they expire; CleanupExpiredSessions
// removes sessions that were not accessed within the given duration. Sessions
// are never written to disk.
package session
