// Package civic holds the third-party data source adapters behind the
// candidate aggregation pipeline. Each adapter normalizes one upstream API
// into a Fact; failures come back as an *AdapterError and never panic, so
// the aggregator can settle every source and merge whatever arrived.
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// Adapter source identities, in fixed merge-priority order.
const (
	SourceVoteSmart       = "votesmart"
	SourceProPublica      = "propublica"
	SourceOpenFEC         = "openfec"
	SourceOpenStates      = "openstates"
	SourceGoogleCivic     = "googlecivic"
	SourceFiveThirtyEight = "fivethirtyeight"
	SourcePerplexity      = "perplexity"
)

// SourceOrder is the identity order used for deterministic merging. It is
// not completion order: the aggregator waits for every adapter, then walks
// this list.
var SourceOrder = []string{
	SourceVoteSmart,
	SourceProPublica,
	SourceOpenFEC,
	SourceOpenStates,
	SourceGoogleCivic,
	SourceFiveThirtyEight,
	SourcePerplexity,
}

// SourceWeights feed the per-field confidence score. Contributions sum and
// cap at 1.0.
var SourceWeights = map[string]float64{
	SourceVoteSmart:       0.4,
	SourceProPublica:      0.3,
	SourceOpenFEC:         0.2,
	SourceOpenStates:      0.1,
	SourceGoogleCivic:     0.1,
	SourceFiveThirtyEight: 0.1,
	SourcePerplexity:      0.05,
}

// Query identifies the candidate an adapter should look up.
type Query struct {
	CandidateID int
	Name        string
	Party       string
	State       string
	Office      string
	District    string
	Address     string
}

// Fact is the normalized record every adapter produces. Zero values mean
// the source had nothing for that field.
type Fact struct {
	Source          string
	CandidateKey    string
	Name            string
	Party           string
	Office          string
	State           string
	District        string
	Biography       string
	Education       string
	Positions       map[string]string
	CampaignFunding string
	PollingPct      *float64
	Raw             json.RawMessage
}

// AdapterError wraps any adapter failure with its source identity and, when
// the upstream responded, the HTTP status. It satisfies httpx.HTTPStatusCoder.
type AdapterError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *AdapterError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s adapter: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s adapter: %v", e.Source, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

func (e *AdapterError) HTTPStatusCode() int { return e.StatusCode }

func adapterErr(source string, status int, err error) *AdapterError {
	return &AdapterError{Source: source, StatusCode: status, Err: err}
}

func adapterErrf(source string, format string, args ...interface{}) *AdapterError {
	return &AdapterError{Source: source, Err: fmt.Errorf(format, args...)}
}

// Adapter is one upstream civic data source.
type Adapter interface {
	Source() string
	Fetch(ctx context.Context, q Query) (*Fact, error)
}

// Registry is the configured adapter set plus the shared HTTP client.
type Registry struct {
	log        *logger.Logger
	httpClient *http.Client
	adapters   []Adapter
}

// NewRegistry builds every adapter whose API key is present in the
// environment. fivethirtyeight needs no key and is always on.
func NewRegistry(log *logger.Logger) *Registry {
	timeoutSec := utils.GetEnvAsInt("CIVIC_HTTP_TIMEOUT_SECONDS", 15, log)
	hc := &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}

	r := &Registry{log: log.With("service", "CivicRegistry"), httpClient: hc}

	if key := envKey("VOTESMART_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newVoteSmartAdapter(log, hc, key))
	}
	if key := envKey("PROPUBLICA_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newProPublicaAdapter(log, hc, key))
	}
	if key := envKey("OPENFEC_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newOpenFECAdapter(log, hc, key))
	}
	if key := envKey("OPENSTATES_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newOpenStatesAdapter(log, hc, key))
	}
	if key := envKey("GOOGLE_CIVIC_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newGoogleCivicAdapter(log, hc, key))
	}
	r.adapters = append(r.adapters, newFiveThirtyEightAdapter(log, hc))
	if key := envKey("PERPLEXITY_API_KEY"); key != "" {
		r.adapters = append(r.adapters, newPerplexityAdapter(log, hc, key))
	}

	r.log.Info("civic adapters configured", "count", len(r.adapters))
	return r
}

// NewRegistryWith wires an explicit adapter set; used by tests and by the
// aggregator's fixtures.
func NewRegistryWith(log *logger.Logger, adapters ...Adapter) *Registry {
	return &Registry{
		log:        log.With("service", "CivicRegistry"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		adapters:   adapters,
	}
}

// Adapters returns the configured set in fixed identity order.
func (r *Registry) Adapters() []Adapter {
	ordered := make([]Adapter, 0, len(r.adapters))
	for _, src := range SourceOrder {
		for _, a := range r.adapters {
			if a.Source() == src {
				ordered = append(ordered, a)
			}
		}
	}
	return ordered
}

// Status reports which sources are live, for the /api/civic/status endpoint.
func (r *Registry) Status() map[string]bool {
	status := make(map[string]bool, len(SourceOrder))
	for _, src := range SourceOrder {
		status[src] = false
	}
	for _, a := range r.adapters {
		status[a.Source()] = true
	}
	return status
}

func envKey(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
