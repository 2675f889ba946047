package response_models

type GroupResponse struct {
	ID      string `json:"id"`
	Persons int    `json:"persons"`
	Seq     int    `json:"seq"`
}

type TripResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FromDate   string          `json:"from_date"`
	TillDate   string          `json:"till_date"`
	Days       int             `json:"days"`
	Archived   bool            `json:"archived"`
	Shared     bool            `json:"shared"` // true when the caller holds a grant rather than owning
	LastUpdate string          `json:"last_update,omitempty"`
	Groups     []GroupResponse `json:"groups,omitempty"`
}
