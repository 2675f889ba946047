package request_models

type GroupInput struct {
	Persons int `json:"persons" binding:"min=0"`
}

type CreateTripRequest struct {
	Name     string       `json:"name" binding:"required"`
	FromDate string       `json:"from_date" binding:"required"` // "2006-01-02"
	TillDate string       `json:"till_date" binding:"required"`
	Groups   []GroupInput `json:"groups"`
}

type UpdateTripRequest struct {
	Name     string       `json:"name" binding:"required"`
	FromDate string       `json:"from_date" binding:"required"`
	TillDate string       `json:"till_date" binding:"required"`
	Groups   []GroupInput `json:"groups"`
}
