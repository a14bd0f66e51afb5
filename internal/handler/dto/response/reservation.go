package response

import (
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// ReservationResponse inlines the stored pricing result, factors included.
type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	TeeTimeID  int64     `json:"teeTimeId"`
	CourseName string    `json:"courseName"`
	StartsAt   time.Time `json:"startsAt"`
	CustomerID uuid.UUID `json:"customerId"`
	Status     string    `json:"status"`
	pricing.Result
	PricedAt      time.Time             `json:"pricedAt"`
	PricingInputs PricingInputsResponse `json:"pricingInputs"`
	Note          *string               `json:"note,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// PricingInputsResponse uses the same field names as a pricectl replay input,
// so a sold price can be audited from the response alone.
type PricingInputsResponse struct {
	Segment     *pricing.LoyaltySegment  `json:"segment,omitempty"`
	Weather     *pricing.WeatherSnapshot `json:"weather,omitempty"`
	ProximityKm *float64                 `json:"proximityKm,omitempty"`
}

type ReservationListResponse struct {
	ID           uuid.UUID `json:"id"`
	TeeTimeID    int64     `json:"teeTimeId"`
	CourseName   string    `json:"courseName"`
	StartsAt     time.Time `json:"startsAt"`
	Status       string    `json:"status"`
	FinalPrice   int64     `json:"finalPrice"`
	DiscountRate float64   `json:"discountRate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationListResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:         v.ID,
		TeeTimeID:  v.TeeTimeID,
		CourseName: v.CourseName,
		StartsAt:   v.StartsAt,
		CustomerID: v.CustomerID,
		Status:     v.Status,
		Result:     v.Quote,
		PricedAt:   v.PricedAt,
		PricingInputs: PricingInputsResponse{
			Segment:     v.Inputs.Segment,
			Weather:     v.Inputs.Weather,
			ProximityKm: v.Inputs.ProximityKm,
		},
		Note:      v.Note,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromReservationListItems(items []*queries.ReservationListItem, next *queries.Cursor) (*ReservationPageResponse, error) {
	page := &ReservationPageResponse{Items: make([]*ReservationListResponse, 0, len(items))}
	for _, item := range items {
		var resp ReservationListResponse
		if err := copier.Copy(&resp, item); err != nil {
			return nil, err
		}
		page.Items = append(page.Items, &resp)
	}
	if next != nil && next.After != "" {
		after := next.After
		page.NextCursor = &after
	}
	return page, nil
}
