package driven

import "context"

// Pinger checks that a configured server connection actually works.
type Pinger interface {
	// Ping performs a cheap authenticated request against the server.
	Ping(ctx context.Context) error
}
