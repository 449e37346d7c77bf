package render

import (
	"context"
)

// Renderer converts submitted Details into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, details Details) ([]byte, error)
}
