// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running entrypoint, such as an HTTP server.
// Serve blocks until the delivery is shut down or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
