package civic

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

func setupHTTPMock(t *testing.T) *http.Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return hc
}

func TestProPublicaAdapter_Fetch_MatchesMember(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		"https://api.propublica.org/congress/v1/members/senate/CA/current.json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "test-key", req.Header.Get("X-API-Key"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{"id": "P000145", "first_name": "Jane", "last_name": "Porter",
						"party": "D", "state": "CA", "role": "Senator, 1st Class"},
				},
			})
		})

	a := newProPublicaAdapter(logger.NewNop(), hc, "test-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter", State: "CA", Office: "U.S. Senate"})

	require.NoError(t, err)
	assert.Equal(t, SourceProPublica, fact.Source)
	assert.Equal(t, "P000145", fact.CandidateKey)
	assert.Equal(t, "Democratic", fact.Party)
}

func TestProPublicaAdapter_Fetch_NoMatchIsError(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		"https://api.propublica.org/congress/v1/members/house/TX/current.json",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"status":  "OK",
			"results": []map[string]interface{}{},
		}))

	a := newProPublicaAdapter(logger.NewNop(), hc, "test-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Nobody Here", State: "TX"})

	require.Error(t, err)
	assert.Nil(t, fact)
	var aerr *AdapterError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, SourceProPublica, aerr.Source)
}

func TestProPublicaAdapter_Fetch_UpstreamErrorCarriesStatus(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		"https://api.propublica.org/congress/v1/members/house/TX/current.json",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "upstream down"))

	a := newProPublicaAdapter(logger.NewNop(), hc, "test-key")
	_, err := a.Fetch(context.Background(), Query{Name: "Anyone", State: "TX"})

	var aerr *AdapterError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, http.StatusServiceUnavailable, aerr.HTTPStatusCode())
}

func TestOpenFECAdapter_Fetch_BuildsFundingSummary(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		`=~^https://api\.open\.fec\.gov/v1/candidates/totals/`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "fec-key", req.URL.Query().Get("api_key"))
			assert.Equal(t, "Jane Porter", req.URL.Query().Get("q"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"results": []map[string]interface{}{
					{"candidate_id": "S8CA00502", "name": "PORTER, JANE",
						"party_full": "DEMOCRATIC PARTY", "office_full": "Senate",
						"state": "CA", "receipts": 1500000.50,
						"last_cash_on_hand_end_period": 250000.25},
				},
			})
		})

	a := newOpenFECAdapter(logger.NewNop(), hc, "fec-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter"})

	require.NoError(t, err)
	assert.Equal(t, "S8CA00502", fact.CandidateKey)
	assert.Equal(t, "Raised $1500000.50, $250000.25 cash on hand", fact.CampaignFunding)
}

func TestVoteSmartAdapter_Fetch_TwoStepBioLookup(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		`=~^https://api\.votesmart\.org/Candidates\.getByLastname`,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"candidateList": map[string]interface{}{
				"candidate": []map[string]interface{}{
					{"candidateId": "120", "firstName": "Jane", "lastName": "Porter", "electionStateId": "CA"},
				},
			},
		}))
	httpmock.RegisterResponder(http.MethodGet,
		`=~^https://api\.votesmart\.org/CandidateBio\.getDetailedBio`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "120", req.URL.Query().Get("candidateId"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"bio": map[string]interface{}{
					"candidate": map[string]interface{}{
						"candidateId": "120", "firstName": "Jane", "lastName": "Porter",
						"party": "Democratic", "biography": "Consumer protection attorney.",
						"education": "JD, Harvard Law School",
					},
					"office": map[string]interface{}{"name": "U.S. Senate", "stateId": "CA"},
				},
			})
		})

	a := newVoteSmartAdapter(logger.NewNop(), hc, "vs-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter", State: "CA"})

	require.NoError(t, err)
	assert.Equal(t, "Consumer protection attorney.", fact.Biography)
	assert.Equal(t, "JD, Harvard Law School", fact.Education)
	assert.Equal(t, "U.S. Senate", fact.Office)
}

func TestOpenStatesAdapter_Fetch_PrefersExactNameMatch(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		`=~^https://v3\.openstates\.org/people`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "os-key", req.Header.Get("X-API-KEY"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"results": []map[string]interface{}{
					{"id": "ocd-person/1", "name": "Jane Porterfield", "party": "Democratic"},
					{"id": "ocd-person/2", "name": "Jane Porter", "party": "Democratic",
						"current_role": map[string]interface{}{"title": "State Senator", "district": "12"}},
				},
			})
		})

	a := newOpenStatesAdapter(logger.NewNop(), hc, "os-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter", State: "CA"})

	require.NoError(t, err)
	assert.Equal(t, "ocd-person/2", fact.CandidateKey)
	assert.Equal(t, "State Senator", fact.Office)
	assert.Equal(t, "12", fact.District)
}

func TestFiveThirtyEightAdapter_Fetch_ParsesFirstMatchingRow(t *testing.T) {
	hc := setupHTTPMock(t)
	csvBody := "poll_id,candidate_name,pct\n" +
		"1,Jane Porter,46.5\n" +
		"2,John Smith,44.0\n" +
		"3,Jane Porter,45.1\n"
	httpmock.RegisterResponder(http.MethodGet,
		"https://projects.fivethirtyeight.com/polls/data/president_polls.csv",
		httpmock.NewStringResponder(http.StatusOK, csvBody))

	a := newFiveThirtyEightAdapter(logger.NewNop(), hc)
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter"})

	require.NoError(t, err)
	require.NotNil(t, fact.PollingPct)
	assert.InDelta(t, 46.5, *fact.PollingPct, 0.001)
}

func TestFiveThirtyEightAdapter_Fetch_NoRowsIsError(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet,
		"https://projects.fivethirtyeight.com/polls/data/president_polls.csv",
		httpmock.NewStringResponder(http.StatusOK, "poll_id,candidate_name,pct\n"))

	a := newFiveThirtyEightAdapter(logger.NewNop(), hc)
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter"})

	require.Error(t, err)
	assert.Nil(t, fact)
}

func TestPerplexityAdapter_Fetch_ParsesJSONContent(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost,
		"https://api.perplexity.ai/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer px-key", req.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]interface{}{
						"content": `{"biography":"Attorney and legislator.","education":"Harvard Law","positions":{"economy":"Supports small business tax credits"}}`,
					}},
				},
			})
		})

	a := newPerplexityAdapter(logger.NewNop(), hc, "px-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter", State: "CA"})

	require.NoError(t, err)
	assert.Equal(t, "Attorney and legislator.", fact.Biography)
	assert.Equal(t, "Supports small business tax credits", fact.Positions["economy"])
}

func TestPerplexityAdapter_Fetch_NonJSONContentKeptAsBiography(t *testing.T) {
	hc := setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodPost,
		"https://api.perplexity.ai/chat/completions",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "Jane Porter is an attorney."}},
			},
		}))

	a := newPerplexityAdapter(logger.NewNop(), hc, "px-key")
	fact, err := a.Fetch(context.Background(), Query{Name: "Jane Porter"})

	require.NoError(t, err)
	assert.Equal(t, "Jane Porter is an attorney.", fact.Biography)
}

func TestRegistry_Status_ReportsEverySource(t *testing.T) {
	r := NewRegistryWith(logger.NewNop(), newFiveThirtyEightAdapter(logger.NewNop(), &http.Client{}))

	status := r.Status()

	assert.Len(t, status, len(SourceOrder))
	assert.True(t, status[SourceFiveThirtyEight])
	assert.False(t, status[SourceVoteSmart])
}

func TestRegistry_Adapters_FixedIdentityOrder(t *testing.T) {
	hc := &http.Client{}
	log := logger.NewNop()
	r := NewRegistryWith(log,
		newPerplexityAdapter(log, hc, "k"),
		newFiveThirtyEightAdapter(log, hc),
		newVoteSmartAdapter(log, hc, "k"),
	)

	ordered := r.Adapters()

	require.Len(t, ordered, 3)
	assert.Equal(t, SourceVoteSmart, ordered[0].Source())
	assert.Equal(t, SourceFiveThirtyEight, ordered[1].Source())
	assert.Equal(t, SourcePerplexity, ordered[2].Source())
}
