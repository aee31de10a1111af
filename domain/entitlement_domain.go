package domain

var (
	MessageSuccessCheckEntitlement = "entitlement checked successfully"

	MessageFailedCheckEntitlement = "failed to check entitlement"
)

type (
	EntitlementRequest struct {
		CourseID      string // path param
		ViewerID      string // empty for anonymous viewers
		ViewerAddress string // optional wallet address
	}

	EntitlementResponse struct {
		HasAccess bool `json:"has_access"`
	}
)
