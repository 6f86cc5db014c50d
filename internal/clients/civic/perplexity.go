package civic

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// perplexityAdapter fills gaps with an AI research completion. It is the
// lowest-precedence source and only ever contributes where every other
// source and the candidate profile were silent.
type perplexityAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func newPerplexityAdapter(log *logger.Logger, hc *http.Client, apiKey string) *perplexityAdapter {
	return &perplexityAdapter{
		log:        log.With("adapter", SourcePerplexity),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai", log),
		model:      utils.GetEnv("PERPLEXITY_MODEL", "sonar", log),
	}
}

func (a *perplexityAdapter) Source() string { return SourcePerplexity }

type perplexityChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type perplexityResearch struct {
	Biography string            `json:"biography"`
	Education string            `json:"education"`
	Positions map[string]string `json:"positions"`
}

func (a *perplexityAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourcePerplexity, "name required")
	}

	prompt := "Research the political candidate " + q.Name
	if q.State != "" {
		prompt += " (" + q.State + ")"
	}
	if q.Office != "" {
		prompt += " running for " + q.Office
	}
	prompt += `. Respond with JSON only: {"biography": string, "education": string, "positions": {category: string}}. Use empty strings for anything unknown.`

	body := map[string]interface{}{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a nonpartisan civic data researcher. Respond with valid JSON only."},
			{"role": "user", "content": prompt},
		},
	}

	var parsed perplexityChatResponse
	raw, err := postJSON(ctx, a.httpClient, SourcePerplexity, a.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + a.apiKey,
	}, body, &parsed)
	if err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, adapterErrf(SourcePerplexity, "empty completion")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	fact := &Fact{Source: SourcePerplexity, Name: q.Name, Raw: raw}
	var research perplexityResearch
	if err := json.Unmarshal([]byte(content), &research); err != nil {
		// Model did not honor the JSON contract; keep the prose as biography.
		fact.Biography = content
		return fact, nil
	}
	fact.Biography = research.Biography
	fact.Education = research.Education
	fact.Positions = research.Positions
	return fact, nil
}
