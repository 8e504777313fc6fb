// Package delivery defines the process entry points driven by fx.
package delivery

import "context"

// Delivery is a long-running server started from main.
type Delivery interface {
	Serve(ctx context.Context) error
}
