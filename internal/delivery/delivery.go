// Package delivery defines the outer surfaces started by the application.
package delivery

import "context"

// Delivery is a long-running surface such as the HTTP API.
type Delivery interface {
	Serve(ctx context.Context) error
}
