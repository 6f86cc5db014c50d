package civic

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// googleCivicAdapter resolves ballot appearances from the Google Civic
// Information voterinfo endpoint. Needs an address to anchor the lookup.
type googleCivicAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func newGoogleCivicAdapter(log *logger.Logger, hc *http.Client, apiKey string) *googleCivicAdapter {
	return &googleCivicAdapter{
		log:        log.With("adapter", SourceGoogleCivic),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("GOOGLE_CIVIC_BASE_URL", "https://www.googleapis.com/civicinfo/v2", log),
	}
}

func (a *googleCivicAdapter) Source() string { return SourceGoogleCivic }

type googleCivicVoterInfoResponse struct {
	Contests []struct {
		Office     string                 `json:"office"`
		District   *struct{ Name string } `json:"district"`
		Candidates []struct {
			Name         string `json:"name"`
			Party        string `json:"party"`
			CandidateURL string `json:"candidateUrl"`
		} `json:"candidates"`
	} `json:"contests"`
}

func (a *googleCivicAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourceGoogleCivic, "name required")
	}
	address := q.Address
	if address == "" {
		address = q.State
	}
	if address == "" {
		return nil, adapterErrf(SourceGoogleCivic, "address or state required")
	}

	params := url.Values{}
	params.Set("key", a.apiKey)
	params.Set("address", address)
	endpoint := a.baseURL + "/voterinfo?" + params.Encode()

	var parsed googleCivicVoterInfoResponse
	raw, err := getJSON(ctx, a.httpClient, SourceGoogleCivic, endpoint, nil, &parsed)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(q.Name)
	for _, contest := range parsed.Contests {
		for _, c := range contest.Candidates {
			if strings.ToLower(c.Name) != want {
				continue
			}
			fact := &Fact{
				Source: SourceGoogleCivic,
				Name:   c.Name,
				Party:  c.Party,
				Office: contest.Office,
				State:  q.State,
				Raw:    raw,
			}
			if contest.District != nil {
				fact.District = contest.District.Name
			}
			return fact, nil
		}
	}
	return nil, adapterErrf(SourceGoogleCivic, "no ballot match for %q", q.Name)
}
