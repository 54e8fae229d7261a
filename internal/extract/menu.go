package extract

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/model"
)

var (
	menuPricePattern = regexp.MustCompile(`[¥$￥]\s*\d+(?:\.\d{2})?|\d+(?:\.\d{2})?\s*[元块]`)
	spicyPattern     = regexp.MustCompile(`[不无]?辣|微辣|中辣|特辣|变态辣`)
)

// MenuExtractor is a regex-based extractor that only handles menu records.
// It shows how a custom (type, extractor) pair plugs into the registry
// without touching the built-in extraction paths.
type MenuExtractor struct {
	logger *zap.Logger
}

func NewMenuExtractor(logger *zap.Logger) *MenuExtractor {
	return &MenuExtractor{logger: logger}
}

func (e *MenuExtractor) Supports(proto model.Factory) bool {
	return proto.ExtractionType() == model.TypeMenu
}

func (e *MenuExtractor) Extract(ctx context.Context, text string, proto model.Factory) []model.Record {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	item := &model.MenuItem{}
	for _, line := range nonBlankLines(text) {
		price := menuPricePattern.FindString(line)
		if price != "" && item.Price == "" {
			item.Price = price
		}

		if spicy := spicyPattern.FindString(line); spicy != "" {
			item.SpicyLevel = spicy
		}

		if price == "" && item.DishName == "" && len([]rune(line)) > 2 {
			item.DishName = line
		} else if item.DishName != "" && item.Description == "" && len([]rune(line)) > 5 {
			item.Description = line
		}
	}

	item.UpdateConfidence()
	return []model.Record{item}
}
