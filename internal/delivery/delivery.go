// Package delivery defines the contract for transport servers (HTTP today).
package delivery

import "context"

// Delivery is a long-running transport server managed by the application
// lifecycle. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
