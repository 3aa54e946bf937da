package export

import (
	"context"

	"hemp-kart/internal/model"
)

// Exporter writes an analytics summary to a destination under a key. The
// payload format (gzipped JSON) is owned by the implementations; callers
// only choose the key.
type Exporter interface {
	Export(ctx context.Context, key string, summary []model.CodeSummary) error
}
