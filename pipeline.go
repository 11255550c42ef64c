package main

import (
	"fmt"
	"log/slog"

	"guide_creator/config"
	"guide_creator/generator"
	"guide_creator/publisher"
)

// buildLLM returns the completion client for model under cfg's provider.
func buildLLM(cfg *config.Config, model string) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings, cfg.LLM.Timeout)
	case "deepseek":
		// DeepSeek speaks the OpenAI protocol but has no default endpoint.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings, cfg.LLM.Timeout)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

// buildFlow wires one pipeline run that writes into outDir.
func buildFlow(cfg *config.Config, outDir string, logger *slog.Logger) (*generator.Flow, error) {
	outlineLLM, err := buildLLM(cfg, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	authorLLM := outlineLLM
	if cfg.AuthorModel() != cfg.LLM.Model {
		if authorLLM, err = buildLLM(cfg, cfg.AuthorModel()); err != nil {
			return nil, err
		}
	}
	author, err := generator.NewAuthor(authorLLM,
		generator.WithReview(cfg.Author.Review),
		generator.WithAuthorLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	writer, err := publisher.New(outDir,
		publisher.WithHTML(cfg.Output.HTML),
		publisher.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return generator.NewFlow(outlineLLM, author, writer, logger)
}
