package request_models

type IssueShareRequest struct {
	Level string `json:"level" binding:"required"` // "read" | "write"
}
