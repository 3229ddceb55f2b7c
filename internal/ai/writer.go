// Package ai generates blog drafts through an OpenAI-compatible chat API.
// The default base URL points at Gemini's compatibility endpoint.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var ErrNotConfigured = errors.New("ai provider key not configured")

const systemPrompt = "You are an expert writer specializing in health, nature, consciousness, " +
	"spirituality, and holistic wellness. Write engaging, informative blog posts that are " +
	"SEO-friendly and educational. Cover topics like natural remedies, mindfulness, nutrition, " +
	"herbal medicine, sustainable living, and personal growth. Focus on scientific facts when " +
	"available, practical applications, and inspiring content."

type Draft struct {
	Title   string
	Content string
}

type Writer interface {
	GenerateDraft(ctx context.Context, keywords string) (*Draft, error)
}

type ChatWriter struct {
	client *openai.Client
	model  string
}

func NewChatWriter(apiKey, baseURL, model string) (*ChatWriter, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &ChatWriter{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (w *ChatWriter) GenerateDraft(ctx context.Context, keywords string) (*Draft, error) {
	prompt := fmt.Sprintf("Write a comprehensive blog post about: %s. Include an engaging title, "+
		"detailed content with sections covering the main topic, benefits, scientific research "+
		"(if applicable), practical applications, and important considerations. Make it around "+
		"800-1200 words. Format with proper headings using markdown. Be creative and informative.",
		keywords)

	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: w.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("ai: empty completion")
	}

	return SplitDraft(resp.Choices[0].Message.Content, keywords), nil
}

// SplitDraft takes the first line as the title (markdown heading markers
// stripped) and the rest as the body. Falls back to the keywords when the
// completion is a single line.
func SplitDraft(raw, keywords string) *Draft {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return &Draft{Title: keywords, Content: raw}
	}

	title := strings.TrimSpace(strings.ReplaceAll(lines[0], "#", ""))
	content := raw
	if len(lines) > 1 {
		content = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return &Draft{Title: title, Content: content}
}
