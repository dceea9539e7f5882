package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/errs"
)

type BasketItemView struct {
	Code     string    `json:"code"`
	Activity string    `json:"activity"`
	Facility string    `json:"facility"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type BasketView struct {
	Items []BasketItemView `json:"items"`
}

type BasketQueries interface {
	View(ctx context.Context, scope uuid.UUID) (*BasketView, error)
}

type basketQueries struct {
	baskets BasketReader
}

func NewBasketQueries(baskets BasketReader) BasketQueries {
	return &basketQueries{baskets: baskets}
}

// View decodes the basket's codes for display. Codes are validated on entry,
// so a decode failure here means the store was tampered with; it surfaces as
// an error rather than a silent drop.
func (q *basketQueries) View(ctx context.Context, scope uuid.UUID) (*BasketView, error) {
	b, err := q.baskets.Get(ctx, scope.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load basket")
	}

	view := &BasketView{Items: []BasketItemView{}}
	for _, code := range b.Codes() {
		slot, err := schedule.SlotFromCode(code)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidSlotCode)
		}
		view.Items = append(view.Items, BasketItemView{
			Code:     code,
			Activity: slot.Activity.Label(),
			Facility: slot.Facility.Label(),
			Start:    slot.Start,
			End:      slot.End,
		})
	}
	return view, nil
}
