package ctxutil

import "context"

// ActorKind identifies which kind of authenticated principal issued a request.
type ActorKind string

const (
	ActorVoter     ActorKind = "voter"
	ActorCandidate ActorKind = "candidate"
	ActorCampaign  ActorKind = "campaign"
)

// RequestData carries the authenticated identity for a request. The ID
// fields matching Kind are set; the rest are zero.
type RequestData struct {
	Kind               ActorKind
	VoterID            int
	CandidateID        int
	CandidateAccountID int
	CampaignAccountID  int
	SubscriptionTier   string
	TokenString        string
}

type requestDataKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, ok := ctx.Value(requestDataKey{}).(*RequestData)
	if !ok {
		return nil
	}
	return rd
}
