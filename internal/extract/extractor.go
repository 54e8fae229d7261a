// Package extract implements the extraction strategies that turn OCR text
// into populated records.
package extract

import (
	"context"

	"github.com/Nydaym/mineru-extractor/internal/model"
)

// Extractor is the strategy contract. Extract returns zero or more populated
// records, each with its confidence already computed. It never returns an
// error: blank input, upstream failures and malformed model output all
// degrade to an empty result, because noisy OCR text makes extraction
// misses an expected outcome rather than an exceptional one.
type Extractor interface {
	Supports(proto model.Factory) bool
	Extract(ctx context.Context, text string, proto model.Factory) []model.Record
}
