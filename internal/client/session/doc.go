// Package session holds the client's authentication state: whether the
// user is logged in, the profile snapshot, and whether the first server
// round-trip has completed.
//
// The Store is the single source of truth for that state. It is created
// once per process and handed to every command that needs it; it is
// mutated only through RefreshAuthState, RefreshUserData, Login and
// Logout. Readers either take a Snapshot or Subscribe to changes.
//
// # Overlapping operations
//
// Network calls are not cancelled when a newer call of the same kind is
// issued. Instead each call takes a generation number when it starts and
// its result is dropped if a newer call of the same kind has started in
// the meantime. Login and Logout share one kind, so a slow login can never
// resurrect a session that a later logout ended.
package session
