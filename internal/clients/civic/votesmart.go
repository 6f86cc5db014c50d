package civic

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// voteSmartAdapter resolves a candidate by last name, then pulls the
// detailed biography record. Highest-weighted external source.
type voteSmartAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func newVoteSmartAdapter(log *logger.Logger, hc *http.Client, apiKey string) *voteSmartAdapter {
	return &voteSmartAdapter{
		log:        log.With("adapter", SourceVoteSmart),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("VOTESMART_BASE_URL", "https://api.votesmart.org", log),
	}
}

func (a *voteSmartAdapter) Source() string { return SourceVoteSmart }

type voteSmartSearchResponse struct {
	CandidateList struct {
		Candidate []voteSmartCandidateStub `json:"candidate"`
	} `json:"candidateList"`
}

type voteSmartCandidateStub struct {
	CandidateID string `json:"candidateId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	OfficeState string `json:"electionStateId"`
}

type voteSmartBioResponse struct {
	Bio struct {
		Candidate struct {
			CandidateID string `json:"candidateId"`
			FirstName   string `json:"firstName"`
			LastName    string `json:"lastName"`
			Party       string `json:"party"`
			Biography   string `json:"biography"`
			Education   string `json:"education"`
			Profession  string `json:"profession"`
		} `json:"candidate"`
		Office struct {
			Name     string `json:"name"`
			District string `json:"district"`
			StateID  string `json:"stateId"`
		} `json:"office"`
	} `json:"bio"`
}

func (a *voteSmartAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourceVoteSmart, "name required")
	}

	parts := strings.Fields(q.Name)
	lastName := parts[len(parts)-1]

	params := url.Values{}
	params.Set("key", a.apiKey)
	params.Set("lastName", lastName)
	params.Set("o", "JSON")
	searchURL := a.baseURL + "/Candidates.getByLastname?" + params.Encode()

	var search voteSmartSearchResponse
	if _, err := getJSON(ctx, a.httpClient, SourceVoteSmart, searchURL, nil, &search); err != nil {
		return nil, err
	}

	stub := matchVoteSmartStub(search.CandidateList.Candidate, q)
	if stub == nil {
		return nil, adapterErrf(SourceVoteSmart, "no candidate match for %q", q.Name)
	}

	params = url.Values{}
	params.Set("key", a.apiKey)
	params.Set("candidateId", stub.CandidateID)
	params.Set("o", "JSON")
	bioURL := a.baseURL + "/CandidateBio.getDetailedBio?" + params.Encode()

	var bio voteSmartBioResponse
	raw, err := getJSON(ctx, a.httpClient, SourceVoteSmart, bioURL, nil, &bio)
	if err != nil {
		return nil, err
	}

	c := bio.Bio.Candidate
	biography := c.Biography
	if biography == "" && c.Profession != "" {
		biography = fmt.Sprintf("%s %s, %s", c.FirstName, c.LastName, c.Profession)
	}
	return &Fact{
		Source:       SourceVoteSmart,
		CandidateKey: c.CandidateID,
		Name:         strings.TrimSpace(c.FirstName + " " + c.LastName),
		Party:        c.Party,
		Office:       bio.Bio.Office.Name,
		State:        bio.Bio.Office.StateID,
		District:     bio.Bio.Office.District,
		Biography:    biography,
		Education:    c.Education,
		Raw:          raw,
	}, nil
}

func matchVoteSmartStub(stubs []voteSmartCandidateStub, q Query) *voteSmartCandidateStub {
	want := strings.ToLower(q.Name)
	var stateMatch *voteSmartCandidateStub
	for i := range stubs {
		s := &stubs[i]
		full := strings.ToLower(strings.TrimSpace(s.FirstName + " " + s.LastName))
		if full == want {
			return s
		}
		if stateMatch == nil && q.State != "" && strings.EqualFold(s.OfficeState, q.State) {
			stateMatch = s
		}
	}
	if stateMatch != nil {
		return stateMatch
	}
	if len(stubs) > 0 {
		return &stubs[0]
	}
	return nil
}
