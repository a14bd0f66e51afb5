package request

type QuoteQuery struct {
	ProximityKm *float64 `form:"proximity_km" binding:"omitempty,gte=0"`
}
