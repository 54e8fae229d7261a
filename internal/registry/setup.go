package registry

import (
	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/config"
	"github.com/Nydaym/mineru-extractor/internal/extract"
	"github.com/Nydaym/mineru-extractor/internal/llm"
	"github.com/Nydaym/mineru-extractor/internal/model"
)

// Setup builds the registry with the built-in models and extractors. It runs
// once at startup, before the server begins accepting traffic; anything
// registered later must go through the registry's own locking.
func Setup(cfg *config.Config, logger *zap.Logger) *Registry {
	r := New(logger)

	r.RegisterModel(&model.Person{})
	r.RegisterModel(&model.Sentiment{})
	r.RegisterModel(&model.CompanyInfo{})
	r.RegisterModel(&model.ProductInfo{})
	r.RegisterModel(&model.ContactInfo{})
	r.RegisterModel(&model.MenuItem{})

	var client *llm.Client
	if !cfg.HeuristicOnly() {
		client = llm.NewClient(cfg.LLM, logger)
		logger.Info("llm extraction enabled", zap.String("model", client.GetModel()))
	}
	r.RegisterExtractor(extract.NewLLMExtractor(client, logger))
	r.RegisterExtractor(extract.NewMenuExtractor(logger))

	return r
}
