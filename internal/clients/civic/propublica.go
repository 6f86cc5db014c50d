package civic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// proPublicaAdapter pulls sitting-member records from the ProPublica
// Congress API. Only useful for incumbents; non-members come back as a
// no-match error and the aggregator moves on.
type proPublicaAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func newProPublicaAdapter(log *logger.Logger, hc *http.Client, apiKey string) *proPublicaAdapter {
	return &proPublicaAdapter{
		log:        log.With("adapter", SourceProPublica),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("PROPUBLICA_BASE_URL", "https://api.propublica.org/congress/v1", log),
	}
}

func (a *proPublicaAdapter) Source() string { return SourceProPublica }

type proPublicaMembersResponse struct {
	Status  string `json:"status"`
	Results []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Party     string `json:"party"`
		State     string `json:"state"`
		District  string `json:"district"`
		Role      string `json:"role"`
	} `json:"results"`
}

func (a *proPublicaAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" || q.State == "" {
		return nil, adapterErrf(SourceProPublica, "name and state required")
	}

	chamber := "house"
	if strings.Contains(strings.ToLower(q.Office), "senat") {
		chamber = "senate"
	}
	url := fmt.Sprintf("%s/members/%s/%s/current.json", a.baseURL, chamber, strings.ToUpper(q.State))

	var parsed proPublicaMembersResponse
	raw, err := getJSON(ctx, a.httpClient, SourceProPublica, url, map[string]string{
		"X-API-Key": a.apiKey,
	}, &parsed)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(q.Name)
	for _, m := range parsed.Results {
		full := strings.ToLower(strings.TrimSpace(m.FirstName + " " + m.LastName))
		if full != want && !strings.Contains(want, strings.ToLower(m.LastName)) {
			continue
		}
		return &Fact{
			Source:       SourceProPublica,
			CandidateKey: m.ID,
			Name:         strings.TrimSpace(m.FirstName + " " + m.LastName),
			Party:        expandParty(m.Party),
			Office:       m.Role,
			State:        m.State,
			District:     m.District,
			Raw:          raw,
		}, nil
	}
	return nil, adapterErrf(SourceProPublica, "no member match for %q in %s", q.Name, q.State)
}

func expandParty(code string) string {
	switch strings.ToUpper(code) {
	case "D", "DEM":
		return "Democratic"
	case "R", "REP":
		return "Republican"
	case "I", "ID", "IND":
		return "Independent"
	default:
		return code
	}
}
