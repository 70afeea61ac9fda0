// Package stubapi runs a local stand-in for the remote posts API.
//
// It serves a seeded post collection on GET /posts so the demo and manual
// experiments work offline, and it can inject failures on demand
// (?fail=500) to exercise a subscriber's error channel.
package stubapi
