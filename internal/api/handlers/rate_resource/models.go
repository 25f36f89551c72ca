package rate_resource

// RateResourceRequest тело PUT /resources/{resourceId}/rating
type RateResourceRequest struct {
	Value *int `json:"value" validate:"required"`
}
