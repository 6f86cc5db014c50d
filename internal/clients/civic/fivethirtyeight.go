package civic

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
	"github.com/ballotwise/ballotwise-backend/internal/utils"
)

// fiveThirtyEightAdapter reads the public polling CSV feed. No API key; the
// adapter is always configured. Only PollingPct is populated.
type fiveThirtyEightAdapter struct {
	log        *logger.Logger
	httpClient *http.Client
	feedURL    string
}

func newFiveThirtyEightAdapter(log *logger.Logger, hc *http.Client) *fiveThirtyEightAdapter {
	return &fiveThirtyEightAdapter{
		log:        log.With("adapter", SourceFiveThirtyEight),
		httpClient: hc,
		feedURL:    utils.GetEnv("FIVETHIRTYEIGHT_POLLS_URL", "https://projects.fivethirtyeight.com/polls/data/president_polls.csv", log),
	}
}

func (a *fiveThirtyEightAdapter) Source() string { return SourceFiveThirtyEight }

func (a *fiveThirtyEightAdapter) Fetch(ctx context.Context, q Query) (*Fact, error) {
	if q.Name == "" {
		return nil, adapterErrf(SourceFiveThirtyEight, "name required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		return nil, adapterErr(SourceFiveThirtyEight, 0, err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, adapterErr(SourceFiveThirtyEight, 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, adapterErrf(SourceFiveThirtyEight, "feed returned status %d", resp.StatusCode)
	}

	pct, err := a.scanForCandidate(resp.Body, q.Name)
	if err != nil {
		return nil, err
	}
	return &Fact{
		Source:     SourceFiveThirtyEight,
		Name:       q.Name,
		PollingPct: pct,
	}, nil
}

// scanForCandidate streams the CSV and keeps the first matching row, which
// is the most recent poll in the feed's ordering.
func (a *fiveThirtyEightAdapter) scanForCandidate(r io.Reader, name string) (*float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, adapterErr(SourceFiveThirtyEight, 0, err)
	}
	nameIdx, pctIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "candidate_name":
			nameIdx = i
		case "pct":
			pctIdx = i
		}
	}
	if nameIdx < 0 || pctIdx < 0 {
		return nil, adapterErrf(SourceFiveThirtyEight, "feed missing candidate_name/pct columns")
	}

	want := strings.ToLower(name)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, adapterErr(SourceFiveThirtyEight, 0, err)
		}
		if len(record) <= nameIdx || len(record) <= pctIdx {
			continue
		}
		if strings.ToLower(strings.TrimSpace(record[nameIdx])) != want {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(record[pctIdx]), 64)
		if err != nil {
			continue
		}
		return &pct, nil
	}
	return nil, adapterErrf(SourceFiveThirtyEight, "no polling rows for %q", name)
}
