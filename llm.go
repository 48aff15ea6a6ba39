package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

type LLMUsage struct {
	InputTokens  int64
	OutputTokens int64
}

func (u LLMUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}

func (u *LLMUsage) Add(other LLMUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

const defaultGeminiModel = "gemini-2.5-pro"
const defaultAnthropicModel = "claude-sonnet-4-5-20250929"
const defaultOpenAIModel = "gpt-4o-mini"

// generateText runs one combined prompt through the configured provider and
// returns the raw text response. Tests stub generateTextFn to avoid network.
func generateText(cfg Config, prompt string) (string, LLMUsage, error) {
	model := cfg.LLMModel
	switch cfg.LLMProvider {
	case "anthropic":
		if model == "" {
			model = defaultAnthropicModel
		}
		return callAnthropic(cfg.AnthropicAPIKey, model, prompt)
	case "openai":
		if model == "" {
			model = defaultOpenAIModel
		}
		return callOpenAI(cfg.OpenAIAPIKey, model, prompt)
	default:
		if model == "" {
			model = defaultGeminiModel
		}
		return callGemini(cfg.GeminiAPIKey, model, prompt)
	}
}

var generateTextFn = generateText

// stripCodeFence removes surrounding markdown fencing (``` with an optional
// language tag) that providers sometimes wrap around JSON bodies.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeJSONResponse strips fencing and decodes a structured response into
// out. A response that still fails to decode is a classification parse
// error; the affected batch contributes zero results.
func decodeJSONResponse(responseText string, out any) error {
	cleaned := stripCodeFence(responseText)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		truncated := cleaned
		if len(truncated) > 512 {
			truncated = truncated[:512] + fmt.Sprintf("... [truncated, total_length=%d]", len(cleaned))
		}
		return fmt.Errorf("parsing LLM response: %w (response: %s)", err, truncated)
	}
	return nil
}

// ClassifyPosts runs one batched problem-classification call. Empty batches
// are a caller error; callers short-circuit before reaching here.
func ClassifyPosts(cfg Config, batch Batch) ([]PostVerdict, LLMUsage, error) {
	prompt := postBatchPrompt(batch.Payload(batchSeparator))
	responseText, usage, err := generateTextFn(cfg, prompt)
	if err != nil {
		return nil, usage, err
	}
	var resp struct {
		Results []PostVerdict `json:"results"`
	}
	if err := decodeJSONResponse(responseText, &resp); err != nil {
		return nil, usage, err
	}
	return resp.Results, usage, nil
}

// ClassifyComments runs one batched sentiment-classification call.
func ClassifyComments(cfg Config, batch Batch) ([]CommentVerdict, LLMUsage, error) {
	prompt := commentBatchPrompt(batch.Payload(batchSeparator))
	responseText, usage, err := generateTextFn(cfg, prompt)
	if err != nil {
		return nil, usage, err
	}
	var resp struct {
		Results []CommentVerdict `json:"results"`
	}
	if err := decodeJSONResponse(responseText, &resp); err != nil {
		return nil, usage, err
	}
	return resp.Results, usage, nil
}

// ClassifyKeywords runs one batched opportunity assessment over keyword
// statistics lines.
func ClassifyKeywords(cfg Config, batch Batch) ([]KeywordVerdict, LLMUsage, error) {
	prompt := keywordBatchPrompt(batch.Payload(batchSeparator))
	responseText, usage, err := generateTextFn(cfg, prompt)
	if err != nil {
		return nil, usage, err
	}
	var resp struct {
		Results []KeywordVerdict `json:"results"`
	}
	if err := decodeJSONResponse(responseText, &resp); err != nil {
		return nil, usage, err
	}
	return resp.Results, usage, nil
}

// --- Gemini ---

func callGemini(apiKey, model, prompt string) (string, LLMUsage, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", LLMUsage{}, fmt.Errorf("creating Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("llm gemini error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("Gemini API error: %w", err)
	}

	usage := LLMUsage{}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int64(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", usage, fmt.Errorf("no text content in Gemini response")
	}
	log.Printf("llm gemini response size=%d tokens_in=%d tokens_out=%d", len(text), usage.InputTokens, usage.OutputTokens)
	return text, usage, nil
}

// --- Anthropic ---

func callAnthropic(apiKey, model, prompt string) (string, LLMUsage, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("Anthropic API error: %w", err)
	}
	usage := LLMUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d", len(block.Text), usage.InputTokens, usage.OutputTokens)
			return block.Text, usage, nil
		}
	}
	return "", usage, fmt.Errorf("no text content in Anthropic response")
}

// --- OpenAI ---

func callOpenAI(apiKey, model, prompt string) (string, LLMUsage, error) {
	client := openai.NewClient(apiKey)

	resp, err := client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", LLMUsage{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", LLMUsage{}, fmt.Errorf("no choices in OpenAI response")
	}
	usage := LLMUsage{
		InputTokens:  int64(resp.Usage.PromptTokens),
		OutputTokens: int64(resp.Usage.CompletionTokens),
	}

	log.Printf("llm openai response size=%d tokens_in=%d tokens_out=%d", len(resp.Choices[0].Message.Content), usage.InputTokens, usage.OutputTokens)
	return resp.Choices[0].Message.Content, usage, nil
}
