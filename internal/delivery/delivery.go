// Package delivery defines the transports that expose the auth workflow.
package delivery

import "context"

// Delivery is a long-running transport started once the fx application is up.
type Delivery interface {
	Serve(ctx context.Context) error
}
