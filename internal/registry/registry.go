// Package registry maps extraction-type identifiers to record prototypes
// and dispatches extraction to the first strategy that supports the type.
package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/Nydaym/mineru-extractor/internal/errors"
	"github.com/Nydaym/mineru-extractor/internal/extract"
	"github.com/Nydaym/mineru-extractor/internal/metrics"
	"github.com/Nydaym/mineru-extractor/internal/model"
)

// Registry manages registered record prototypes and extractors. It is
// populated once at startup; the lock keeps live registration safe against
// concurrent request-time reads.
type Registry struct {
	mu         sync.RWMutex
	models     map[string]model.Factory
	order      []string
	extractors []extract.Extractor
	logger     *zap.Logger
}

// New creates an empty registry
func New(logger *zap.Logger) *Registry {
	return &Registry{
		models: make(map[string]model.Factory),
		logger: logger,
	}
}

// RegisterModel registers a record prototype under its extraction type.
// Registering a second prototype under the same identifier silently
// overwrites the first; the last registration wins.
func (r *Registry) RegisterModel(proto model.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	extractionType := proto.ExtractionType()
	if _, exists := r.models[extractionType]; !exists {
		r.order = append(r.order, extractionType)
	} else {
		r.logger.Warn("overwriting registered model", zap.String("extraction_type", extractionType))
	}
	r.models[extractionType] = proto

	r.logger.Info("registered model", zap.String("extraction_type", extractionType))
}

// RegisterExtractor appends an extractor. Registration order determines
// lookup priority.
func (r *Registry) RegisterExtractor(e extract.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, e)
	r.logger.Info("registered extractor", zap.String("extractor", fmt.Sprintf("%T", e)))
}

// ModelFor returns the prototype registered under the given type.
func (r *Registry) ModelFor(extractionType string) (model.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	proto, ok := r.models[extractionType]
	return proto, ok
}

// FindExtractor returns the first registered extractor that supports the
// prototype, or nil. First match wins regardless of specificity.
func (r *Registry) FindExtractor(proto model.Factory) extract.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.extractors {
		if e.Supports(proto) {
			return e
		}
	}
	return nil
}

// SupportedTypes lists every registered type in registration order.
func (r *Registry) SupportedTypes() []model.TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]model.TypeInfo, 0, len(r.order))
	for _, extractionType := range r.order {
		types = append(types, model.TypeInfo{
			Type:        extractionType,
			Description: r.models[extractionType].TypeDescription(),
		})
	}
	return types
}

// TypeNames returns just the identifiers, for error messages.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Extract resolves the type to a prototype and a strategy, then delegates.
func (r *Registry) Extract(ctx context.Context, text, extractionType string) ([]model.Record, error) {
	proto, ok := r.ModelFor(extractionType)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrUnsupportedType, "EXTRACT_001",
			fmt.Sprintf("unsupported extraction type: %s. supported types: %s",
				extractionType, strings.Join(r.TypeNames(), ", ")))
	}

	e := r.FindExtractor(proto)
	if e == nil {
		return nil, apperrors.Wrap(apperrors.ErrNoExtractor, "EXTRACT_002",
			fmt.Sprintf("no extractor available for type: %s", extractionType))
	}

	metrics.RecordExtraction(extractionType)
	return e.Extract(ctx, text, proto), nil
}
