package request

// AddToBasketRequest carries one or more slot codes picked off the timetable.
// Multi-select forms post several codes in one request.
type AddToBasketRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,dive,required"`
}

type RemoveFromBasketRequest struct {
	Index *int `json:"index" binding:"required,gte=0"`
}
