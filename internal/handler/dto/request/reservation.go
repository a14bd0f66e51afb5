package request

import (
	"teetime/internal/usecase/commands"
)

type CreateReservationRequest struct {
	TeeTimeID   int64    `json:"tee_time_id" binding:"required,gt=0"`
	ProximityKm *float64 `json:"proximity_km,omitempty" binding:"omitempty,gte=0"`
	Note        *string  `json:"note,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationRequest {
	cmd := commands.CreateReservationRequest{
		TeeTimeID:   r.TeeTimeID,
		ProximityKm: r.ProximityKm,
	}
	if r.Note != nil {
		cmd.Note = *r.Note
	}
	return cmd
}

type ListReservationsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	After string `form:"after"`
}
