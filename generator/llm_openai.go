package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAILLMFromConfig builds a client. SDK-level retries are disabled;
// a failed call surfaces to the pipeline unchanged.
func NewOpenAILLMFromConfig(cfg *LLMSettings, timeout time.Duration) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s api key missing; provide llm.api_key", provider)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s model is required; provide llm.model", provider)
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &OpenAILLM{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if prompt.Schema != nil {
		rf, err := jsonSchemaFormat(prompt.Schema)
		if err != nil {
			return "", err
		}
		params.ResponseFormat = rf
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func jsonSchemaFormat(s *ResponseSchema) (openai.ChatCompletionNewParamsResponseFormatUnion, error) {
	var schema map[string]any
	if err := json.Unmarshal(s.Schema, &schema); err != nil {
		return openai.ChatCompletionNewParamsResponseFormatUnion{}, fmt.Errorf("decoding response schema %s: %w", s.Name, err)
	}
	param := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   s.Name,
		Schema: schema,
		Strict: openai.Bool(true),
	}
	if s.Description != "" {
		param.Description = openai.String(s.Description)
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: param},
	}, nil
}
