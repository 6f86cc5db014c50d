package types

// ElectionFilters are the query-string filters accepted by the election
// listing endpoint. Empty slices/strings mean "no constraint"; the HTTP
// layer maps the literal value "all" to empty before it reaches here.
type ElectionFilters struct {
	State     string
	Types     []string
	Levels    []string
	Timeframe string
	Search    string
	Parties   []string
}

// Timeframe windows, measured forward from now.
const (
	TimeframeWeek    = "week"
	TimeframeMonth   = "month"
	TimeframeQuarter = "quarter"
	TimeframeYear    = "year"
)
