package response

import (
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/usecase/queries"
)

// QuoteResponse is the engine result with the tee time it was computed for.
type QuoteResponse struct {
	TeeTimeID  int64     `json:"teeTimeId"`
	CourseName string    `json:"courseName"`
	StartsAt   time.Time `json:"startsAt"`
	QuotedAt   time.Time `json:"quotedAt"`
	pricing.Result
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	return &QuoteResponse{
		TeeTimeID:  v.TeeTimeID,
		CourseName: v.CourseName,
		StartsAt:   v.StartsAt,
		QuotedAt:   v.QuotedAt,
		Result:     v.Result,
	}
}
