// Package handlers contains the gin handlers of the devlog preview server.
//
// Handlers read from a SnapshotSource on every request and never hold on to
// an index between requests, so a rebuild becomes visible on the next call.
package handlers
