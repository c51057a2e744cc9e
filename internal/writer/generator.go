// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package writer implements the automated content pipeline: topic selection,
// blog and thumbnail generation, rich-text conversion, and the per-topic run
// orchestration that writes documents into the content store.
package writer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// GeneratedBlog is the structured output of the text-generation API. It is
// created fresh per topic and discarded after conversion into a post document.
type GeneratedBlog struct {
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Excerpt        string    `json:"excerpt"`
	SEOTitle       string    `json:"seoTitle"`
	SEODescription string    `json:"seoDescription"`
	Category       string    `json:"category"`
	Content        []Section `json:"content"`
}

// Section is one heading plus its paragraphs. The heading may be empty for
// an introductory section.
type Section struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

// ChatClient produces a JSON-formatted chat completion.
type ChatClient interface {
	ChatJSON(ctx context.Context, system, user string) (string, error)
}

// ImageClient produces one image for a prompt, returned as raw bytes.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// OpenAIClient implements ChatClient and ImageClient over the official SDK.
type OpenAIClient struct {
	client     openai.Client
	textModel  string
	imageModel string
}

// NewOpenAIClient creates an API client for the given models. The SDK applies
// its own default request timeout; no retry layer is added here.
func NewOpenAIClient(apiKey, textModel, imageModel string) *OpenAIClient {
	return &OpenAIClient{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		textModel:  textModel,
		imageModel: imageModel,
	}
}

// ChatJSON requests a chat completion in JSON-object mode and returns the
// raw message content.
func (c *OpenAIClient) ChatJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.textModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one 16:9 image and decodes the base64 payload.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:          openai.ImageModel(c.imageModel),
		Prompt:         prompt,
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1792x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("image generation: no image payload returned")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("image base64 decode: %w", err)
	}
	return data, nil
}

// Generator produces blog documents and thumbnail images for topics.
type Generator struct {
	chat   ChatClient
	image  ImageClient
	logger *slog.Logger
}

// NewGenerator creates a Generator over the given API clients.
func NewGenerator(chat ChatClient, image ImageClient, logger *slog.Logger) *Generator {
	return &Generator{chat: chat, image: image, logger: logger}
}

// GenerateBlog produces a structured blog document for a topic. It fails with
// a GenerationError when the API returns an error or no content, and with a
// SchemaError when the content does not decode into the expected shape.
func (g *Generator) GenerateBlog(ctx context.Context, topic string) (*GeneratedBlog, error) {
	g.logger.Info("generating blog content", "topic", topic)

	raw, err := g.chat.ChatJSON(ctx, blogPrompt+"\n"+promptCompliance, "Topic: "+topic)
	if err != nil {
		return nil, &GenerationError{Kind: "text", Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &GenerationError{Kind: "text", Err: errors.New("empty completion")}
	}

	return parseGeneratedBlog(raw)
}

// GenerateThumbnail produces the raw thumbnail image bytes for a topic.
func (g *Generator) GenerateThumbnail(ctx context.Context, topic string) ([]byte, error) {
	g.logger.Info("generating thumbnail", "topic", topic)

	data, err := g.image.GenerateImage(ctx, imagePromptPrefix+topic+imagePromptSuffix)
	if err != nil {
		return nil, &GenerationError{Kind: "image", Err: err}
	}
	if len(data) == 0 {
		return nil, &GenerationError{Kind: "image", Err: errors.New("empty image payload")}
	}
	return data, nil
}

// parseGeneratedBlog decodes and validates the model's JSON output.
func parseGeneratedBlog(raw string) (*GeneratedBlog, error) {
	cleaned := strings.TrimSpace(raw)

	// Strip markdown code fences if the model ignored JSON mode
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	blog := &GeneratedBlog{}
	if err := json.Unmarshal([]byte(cleaned), blog); err != nil {
		// Try to find a JSON object within the response
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return nil, &SchemaError{Err: fmt.Errorf("no JSON object in response: %w", err)}
		}
		if err2 := json.Unmarshal([]byte(raw[start:end+1]), blog); err2 != nil {
			return nil, &SchemaError{Err: fmt.Errorf("undecodable response: %w", err2)}
		}
	}

	if blog.Title == "" {
		return nil, &SchemaError{Err: errors.New("missing title")}
	}
	if len(blog.Content) == 0 {
		return nil, &SchemaError{Err: errors.New("missing content sections")}
	}

	return blog, nil
}
