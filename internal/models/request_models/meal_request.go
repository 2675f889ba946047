package request_models

type AddMealRecordRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Meal      int     `json:"meal"`
	Mass      float64 `json:"mass" binding:"required,gt=0"`
}

type CycleDaysRequest struct {
	SrcStart  int  `json:"src_start"`
	SrcEnd    int  `json:"src_end"`
	DstStart  int  `json:"dst_start"`
	DstEnd    int  `json:"dst_end"`
	Overwrite bool `json:"overwrite"`
}
