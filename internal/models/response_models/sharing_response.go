package response_models

type ShareLinkResponse struct {
	Token         string `json:"token"`
	ShareableLink string `json:"shareable_link"`
	Level         string `json:"level"`
	ExpiresAt     string `json:"expires_at"`
}

type RedeemResponse struct {
	TripID string `json:"trip_id"`
	Level  string `json:"level"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}
