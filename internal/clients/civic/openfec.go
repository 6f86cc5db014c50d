package civic

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// openFECAdapter pulls campaign finance totals from the FEC API. The key
// travels as a query parameter, which is what the upstream expects.
type openFECAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func newOpenFECAdapter(log *logger.Logger, hc *http.Client, apiKey string) *openFECAdapter {
	return &openFECAdapter{
		log:        log.With("adapter", SourceOpenFEC),
		httpClient: hc,
		apiKey:     apiKey,
		baseURL:    utils.GetEnv("OPENFEC_BASE_URL", "https://api.open.fec.gov/v1", log),
	}
}

func (a *openFECAdapter) Source() string { return SourceOpenFEC }

type openFECTotalsResponse struct {
	Results []struct {
		CandidateID   string   `json:"candidate_id"`
		Name          string   `json:"name"`
		Party         string   `json:"party_full"`
		Office        string   `json:"office_full"`
		State         string   `json:"state"`
		District      string   `json:"district"`
		Receipts      *float64 `json:"receipts"`
		Disbursements *float64 `json:"disbursements"`
		CashOnHand    *float64 `json:"last_cash_on_hand_end_period"`
	} `json:"results"`
}

func (a *openFECAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourceOpenFEC, "name required")
	}

	params := url.Values{}
	params.Set("api_key", a.apiKey)
	params.Set("q", q.Name)
	params.Set("per_page", "1")
	params.Set("sort", "-receipts")
	endpoint := a.baseURL + "/candidates/totals/?" + params.Encode()

	var parsed openFECTotalsResponse
	raw, err := getJSON(ctx, a.httpClient, SourceOpenFEC, endpoint, nil, &parsed)
	if err != nil {
		return nil, err
	}
	if len(parsed.Results) == 0 {
		return nil, adapterErrf(SourceOpenFEC, "no finance records for %q", q.Name)
	}

	top := parsed.Results[0]
	funding := ""
	if top.Receipts != nil {
		funding = fmt.Sprintf("Raised $%.2f", *top.Receipts)
		if top.CashOnHand != nil {
			funding += fmt.Sprintf(", $%.2f cash on hand", *top.CashOnHand)
		}
	}
	return &Fact{
		Source:          SourceOpenFEC,
		CandidateKey:    top.CandidateID,
		Name:            top.Name,
		Party:           top.Party,
		Office:          top.Office,
		State:           top.State,
		District:        top.District,
		CampaignFunding: funding,
		Raw:             raw,
	}, nil
}
