// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a long-running inbound surface (e.g. the HTTP server). Instances
// are collected by the composition root and started together.
type Delivery interface {
	Serve(ctx context.Context) error
}
