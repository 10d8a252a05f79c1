// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.IntentClassifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client        llms.Model
	maxSubQueries int
	logger        *slog.Logger
}

// plannedQuery is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type plannedQuery struct {
	Query       string `json:"query"`
	ContextType string `json:"context_type"`
	Intent      string `json:"intent"`
	Priority    int    `json:"priority"`
}

// planResponse is the wrapper structure for the LLM's JSON response.
type planResponse struct {
	Queries   []plannedQuery `json:"queries"`
	Reasoning string         `json:"reasoning"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:        client,
		maxSubQueries: config.MaxSubQueries,
		logger:        slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new intent classifier using the provided configuration.
//
// Returns ai.IntentClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.IntentClassifier, error) {
	return newClassifier(config)
}

// Analyze classifies the current message into typed sub-queries using an LLM.
// The raw plan is mapped to domain types but not validated further; degenerate
// plans are the query planner's concern.
func (c *Classifier) Analyze(ctx context.Context, compressionSummary string, messages []core.Message,
	currentMessage string, hint core.ContextType, targetAbstract string) (*core.QueryPlan, error) {

	userPrompt := buildUserPrompt(compressionSummary, messages,
		scrubString(currentMessage), hint, targetAbstract)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(c.maxSubQueries)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result planResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return &core.QueryPlan{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Map to domain types, dropping entries with unrecognized context types
	queries := make([]core.TypedQuery, 0, len(result.Queries))
	for _, q := range result.Queries {
		kind, err := core.ParseContextType(q.ContextType)
		if err != nil {
			c.logger.Warn("dropping query with unknown context type",
				"context_type", q.ContextType, "query", q.Query)
			continue
		}
		queries = append(queries, core.TypedQuery{
			Query:       q.Query,
			ContextType: kind,
			Intent:      q.Intent,
			Priority:    q.Priority,
		})
	}

	// Sort by priority ascending and cap to the configured maximum
	slices.SortStableFunc(queries, func(a, b core.TypedQuery) int {
		return a.Priority - b.Priority
	})
	if len(queries) > c.maxSubQueries {
		queries = queries[:c.maxSubQueries]
	}

	c.logger.Debug("classified intent",
		"total", len(result.Queries),
		"mapped", len(queries))

	return &core.QueryPlan{
		Queries:        queries,
		SessionContext: compressionSummary,
		Reasoning:      result.Reasoning,
	}, nil
}
