package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's name, used in logs, spans and metrics.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Closeable is optionally implemented by providers that hold resources
// requiring explicit cleanup (idle connections, exporters).
type Closeable interface {
	Close(ctx context.Context) error
}

// Close calls Close on p if it implements Closeable.
func Close(ctx context.Context, p Provider) error {
	if c, ok := p.(Closeable); ok {
		return c.Close(ctx)
	}
	return nil
}
