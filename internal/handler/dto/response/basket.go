package response

import (
	"time"

	"github.com/jinzhu/copier"

	"leisure-booking/internal/usecase/queries"
)

type BasketItemResponse struct {
	Code     string    `json:"code"`
	Activity string    `json:"activity"`
	Facility string    `json:"facility"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type BasketResponse struct {
	Items []BasketItemResponse `json:"items"`
	Count int                  `json:"count"`
}

func FromBasketView(view *queries.BasketView) (*BasketResponse, error) {
	var resp BasketResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	resp.Count = len(resp.Items)
	return &resp, nil
}
