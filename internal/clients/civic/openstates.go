package civic

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// openStatesAdapter covers state-level legislators via the OpenStates v3
// people search. Name search scoped to the candidate's jurisdiction.
type openStatesAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func newOpenStatesAdapter(log *logger.Logger, hc *http.Client, apiKey string) *openStatesAdapter {
	return &openStatesAdapter{
		log:        log.With("adapter", SourceOpenStates),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("OPENSTATES_BASE_URL", "https://v3.openstates.org", log),
	}
}

func (a *openStatesAdapter) Source() string { return SourceOpenStates }

type openStatesPeopleResponse struct {
	Results []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Party       string `json:"party"`
		CurrentRole *struct {
			Title    string `json:"title"`
			District string `json:"district"`
		} `json:"current_role"`
		Jurisdiction struct {
			Name string `json:"name"`
		} `json:"jurisdiction"`
		Biography string `json:"biography"`
	} `json:"results"`
}

func (a *openStatesAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourceOpenStates, "name required")
	}

	params := url.Values{}
	params.Set("name", q.Name)
	if q.State != "" {
		params.Set("jurisdiction", strings.ToLower(q.State))
	}
	endpoint := a.baseURL + "/people?" + params.Encode()

	var parsed openStatesPeopleResponse
	raw, err := getJSON(ctx, a.httpClient, SourceOpenStates, endpoint, map[string]string{
		"X-API-KEY": a.apiKey,
	}, &parsed)
	if err != nil {
		return nil, err
	}
	if len(parsed.Results) == 0 {
		return nil, adapterErrf(SourceOpenStates, "no legislator match for %q", q.Name)
	}

	// Exact name match preferred, otherwise the first search hit.
	idx := 0
	for i, p := range parsed.Results {
		if strings.EqualFold(p.Name, q.Name) {
			idx = i
			break
		}
	}
	p := parsed.Results[idx]

	fact := &Fact{
		Source:       SourceOpenStates,
		CandidateKey: p.ID,
		Name:         p.Name,
		Party:        p.Party,
		State:        q.State,
		Biography:    p.Biography,
		Raw:          raw,
	}
	if p.CurrentRole != nil {
		fact.Office = p.CurrentRole.Title
		fact.District = p.CurrentRole.District
	}
	return fact, nil
}
