// Package delivery defines the common contract of every inbound transport.
package delivery

import "context"

// Delivery is a long running inbound server started by the application.
type Delivery interface {
	// Serve blocks until the server stops or ctx is cancelled.
	Serve(ctx context.Context) error
}
