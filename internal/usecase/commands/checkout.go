package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/basket"
	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

const (
	// Three or more sessions inside one week earn the multi-session discount.
	discountMinSessions = 3
	discountWindow      = 7 * 24 * time.Hour

	problemTimeLayout = "15:04 on 02 Jan 2006"
)

// ResolvedBooking pairs a basket code with the booking it resolved to,
// either an existing booking the attendee merges into or a fresh one.
type ResolvedBooking struct {
	Code    string
	Booking *booking.Booking
}

// CheckoutResult is the resolver's verdict on one basket. Problems are
// customer-facing messages; the basket stays editable until they are gone.
type CheckoutResult struct {
	Bookings         []ResolvedBooking
	Problems         []string
	Valid            bool
	DiscountEligible bool
	RequiresPayment  bool
}

type CheckoutCommands interface {
	// Resolve dry-runs the basket against the live timetable and ledger.
	// Business conditions (stale codes, full sessions, clashes) come back as
	// problems, never as errors.
	Resolve(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error)
	// Commit re-resolves inside a serializable transaction and persists the
	// bookings, so the capacity check and the attendee insert cannot be split
	// by a concurrent checkout. A basket with problems commits nothing, and a
	// checkout that requires payment waits for the payment confirmation.
	Commit(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error)
	// CommitConfirmed commits on behalf of a confirmed payment. Only the
	// payment webhook calls this.
	CommitConfirmed(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommands struct {
	uow       shared.UnitOfWork
	store     BasketStore
	publisher EventPublisher
	clock     clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, store BasketStore, publisher EventPublisher, clk clock.Clock) CheckoutCommands {
	return &checkoutCommands{
		uow:       uow,
		store:     store,
		publisher: publisher,
		clock:     clk,
	}
}

func (c *checkoutCommands) Resolve(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error) {
	codes, err := c.loadCodes(ctx, scope)
	if err != nil {
		return nil, err
	}
	return c.resolve(ctx, c.uow.Repos(), scope, codes)
}

func (c *checkoutCommands) Commit(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error) {
	return c.commit(ctx, scope, false)
}

func (c *checkoutCommands) CommitConfirmed(ctx context.Context, scope uuid.UUID) (*CheckoutResult, error) {
	return c.commit(ctx, scope, true)
}

func (c *checkoutCommands) commit(ctx context.Context, scope uuid.UUID, paymentConfirmed bool) (*CheckoutResult, error) {
	codes, err := c.loadCodes(ctx, scope)
	if err != nil {
		return nil, err
	}

	var result *CheckoutResult
	err = c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := c.resolve(ctx, tx, scope, codes)
		if err != nil {
			return err
		}
		result = res
		if !res.Valid {
			return errs.ErrCheckoutInvalid
		}
		if res.RequiresPayment && !paymentConfirmed {
			return errs.ErrPaymentRequired
		}
		for _, rb := range res.Bookings {
			if err := tx.Bookings().Upsert(ctx, rb.Booking); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrCheckoutInvalid) || errs.Is(err, errs.ErrPaymentRequired) {
			return result, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := c.store.Save(ctx, scope.String(), basket.Basket{}); err != nil {
		// The bookings are durable; a stale basket self-corrects on the next
		// checkout attempt when every code resolves to an existing attendance.
		slog.Warn("failed to clear basket after commit", "scope", scope, "error", err)
	}

	c.publishConfirmed(ctx, scope, result.Bookings)
	return result, nil
}

func (c *checkoutCommands) loadCodes(ctx context.Context, scope uuid.UUID) ([]string, error) {
	b, err := c.store.Get(ctx, scope.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load basket")
	}
	if b.IsEmpty() {
		return nil, errs.ErrEmptyBasket
	}
	return b.Codes(), nil
}

// resolve walks the basket codes in order and builds the checkout verdict.
// It reads through whatever repository set it is given, so the same logic
// serves the dry run (pool reads) and the commit (serializable transaction).
func (c *checkoutCommands) resolve(ctx context.Context, repos shared.Repositories, scope uuid.UUID, codes []string) (*CheckoutResult, error) {
	result := &CheckoutResult{}
	facilities := map[schedule.FacilityID]*schedule.Facility{}
	resolved := map[string]*booking.Booking{}

	for _, code := range codes {
		slot, err := schedule.SlotFromCode(code)
		if err != nil {
			result.Problems = append(result.Problems, fmt.Sprintf("selection %q is not a recognised session", code))
			continue
		}

		offered, err := c.stillOffered(ctx, repos, slot)
		if err != nil {
			return nil, err
		}
		if !offered {
			result.Problems = append(result.Problems,
				fmt.Sprintf("%s in the %s at %s is no longer offered",
					slot.Activity.Label(), slot.Facility.Label(), slot.Start.Format(problemTimeLayout)))
			continue
		}

		b, err := c.bookingFor(ctx, repos, slot, resolved)
		if err != nil {
			return nil, err
		}

		facility, err := c.facilityFor(ctx, repos, slot.Facility, facilities)
		if err != nil {
			return nil, err
		}

		attendance, err := c.attendanceAt(ctx, repos, slot, resolved)
		if err != nil {
			return nil, err
		}
		if !b.HasAttendee(scope) && !facility.HasRoomFor(attendance) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("the %s is fully booked at %s",
					slot.Facility.Label(), slot.Start.Format(problemTimeLayout)))
		}

		// The booking stays in the resolved list even when full, so clash
		// detection sees every selection; validity alone blocks the commit.
		b.AddAttendee(scope)
		result.Bookings = append(result.Bookings, ResolvedBooking{Code: code, Booking: b})
	}

	result.Problems = append(result.Problems, clashProblems(result.Bookings)...)
	result.Valid = len(result.Problems) == 0
	result.DiscountEligible = discountEligible(result.Bookings)

	requiresPayment, err := c.requiresPayment(ctx, repos, scope)
	if err != nil {
		return nil, err
	}
	result.RequiresPayment = requiresPayment

	return result, nil
}

// stillOffered rejects codes that outlived a timetable change: the slot must
// still be derivable from some current entry.
func (c *checkoutCommands) stillOffered(ctx context.Context, repos shared.Repositories, slot schedule.Slot) (bool, error) {
	entries, err := repos.Timetable().FindMatching(ctx, slot.Activity, slot.Facility, schedule.WeekdayOf(slot.Start))
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, entry := range entries {
		if entry.Covers(slot) {
			return true, nil
		}
	}
	return false, nil
}

// bookingFor resolves a slot to its single booking: one already resolved for
// an earlier code in this basket, one persisted in the ledger, or a new one.
func (c *checkoutCommands) bookingFor(ctx context.Context, repos shared.Repositories, slot schedule.Slot, resolved map[string]*booking.Booking) (*booking.Booking, error) {
	keyID := slot.Code()
	if b, ok := resolved[keyID]; ok {
		return b, nil
	}

	b, err := repos.Bookings().FindByKey(ctx, slot.Key())
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		b = booking.FromSlot(slot)
	}
	resolved[keyID] = b
	return b, nil
}

func (c *checkoutCommands) facilityFor(ctx context.Context, repos shared.Repositories, id schedule.FacilityID, cache map[schedule.FacilityID]*schedule.Facility) (*schedule.Facility, error) {
	if f, ok := cache[id]; ok {
		return f, nil
	}
	f, err := repos.Facilities().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrFacilityNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	cache[id] = f
	return f, nil
}

// attendanceAt counts everyone booked into the facility for the slot's
// window, across all activities. Earlier basket entries that resolved into
// the same window count too, so one checkout cannot overfill a facility by
// splitting attendees across activities.
func (c *checkoutCommands) attendanceAt(ctx context.Context, repos shared.Repositories, slot schedule.Slot, resolved map[string]*booking.Booking) (int, error) {
	persisted, err := repos.Bookings().FindOverlapping(ctx, slot.Facility, slot.Start, slot.End)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	counted := map[uuid.UUID]bool{}
	total := 0
	for _, b := range persisted {
		counted[b.ID()] = true
		total += b.AttendeeCount()
	}
	for _, b := range resolved {
		if counted[b.ID()] || b.Facility() != slot.Facility {
			continue
		}
		if !b.Start().Equal(slot.Start) || !b.End().Equal(slot.End) {
			continue
		}
		total += b.AttendeeCount()
	}
	return total, nil
}

// clashProblems reports one message per distinct start time that appears in
// more than one resolved booking. A person cannot be in two places at once.
func clashProblems(bookings []ResolvedBooking) []string {
	seen := map[time.Time]int{}
	var order []time.Time
	for _, rb := range bookings {
		start := rb.Booking.Start().UTC()
		if seen[start] == 0 {
			order = append(order, start)
		}
		seen[start]++
	}

	var problems []string
	for _, start := range order {
		if seen[start] > 1 {
			problems = append(problems,
				fmt.Sprintf("you have selected more than one session starting at %s", start.Format(problemTimeLayout)))
		}
	}
	return problems
}

// discountEligible reports whether some window of discountWindow holds at
// least discountMinSessions of the resolved sessions.
func discountEligible(bookings []ResolvedBooking) bool {
	if len(bookings) < discountMinSessions {
		return false
	}
	starts := make([]time.Time, 0, len(bookings))
	for _, rb := range bookings {
		starts = append(starts, rb.Booking.Start())
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	for i := 0; i+discountMinSessions-1 < len(starts); i++ {
		if starts[i+discountMinSessions-1].Sub(starts[i]) <= discountWindow {
			return true
		}
	}
	return false
}

func (c *checkoutCommands) requiresPayment(ctx context.Context, repos shared.Repositories, scope uuid.UUID) (bool, error) {
	u, err := repos.Users().FindByID(ctx, scope)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.Mark(err, errs.ErrUserNotFound)
		}
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return !u.HasActiveMembership(c.clock.Now()), nil
}

type bookingConfirmedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Activity  string    `json:"activity"`
	Facility  string    `json:"facility"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func (c *checkoutCommands) publishConfirmed(ctx context.Context, scope uuid.UUID, bookings []ResolvedBooking) {
	for _, rb := range bookings {
		event := bookingConfirmedEvent{
			BookingID: rb.Booking.ID(),
			UserID:    scope,
			Activity:  rb.Booking.Activity().Label(),
			Facility:  rb.Booking.Facility().Label(),
			Start:     rb.Booking.Start(),
			End:       rb.Booking.End(),
		}
		if err := c.publisher.PublishJSON(ctx, "booking.confirmed", event); err != nil {
			slog.Warn("failed to publish booking confirmation", "booking_id", rb.Booking.ID(), "error", err)
		}
	}
}
