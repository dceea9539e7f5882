//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/infra/basketstore"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/tests/common/fakes"
)

// monday is a known Monday used as the booking date throughout.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type CheckoutSuite struct {
	suite.Suite
	ctx       context.Context
	uow       *fakes.UnitOfWork
	store     *basketstore.MemoryStore
	publisher *fakes.Publisher
	clock     *clock.MockClock
	checkout  commands.CheckoutCommands
	customer  *user.User
}

func (s *CheckoutSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = fakes.NewUnitOfWork()
	s.store = basketstore.NewMemoryStore()
	s.publisher = fakes.NewPublisher()
	s.clock = clock.NewMockClock(monday.Add(-24 * time.Hour))
	s.checkout = commands.NewCheckoutCommands(s.uow, s.store, s.publisher, s.clock)

	s.customer = user.NewUser("swimmer@example.com", "hash", user.RoleCustomer)
	s.Require().NoError(s.uow.UserRepo.Create(s.ctx, s.customer))

	pool, err := schedule.NewFacility(schedule.FacilityPool, 8, 22, 20)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, pool))
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) addEntry(activity schedule.ActivityType, facility schedule.FacilityID, weekday schedule.Weekday, open, close int) *schedule.TimetableEntry {
	entry, err := schedule.NewTimetableEntry(activity, facility, weekday, open, close)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.TimetableRepo.Create(s.ctx, entry))
	return entry
}

func (s *CheckoutSuite) fillBasket(codes ...string) {
	b, err := s.store.Get(s.ctx, s.customer.ID().String())
	s.Require().NoError(err)
	for _, code := range codes {
		b, err = b.Add(code)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.store.Save(s.ctx, s.customer.ID().String(), b))
}

func (s *CheckoutSuite) TestResolveGeneratedSlotsEndToEnd() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)

	slots := schedule.GenerateSlots(entry, monday)
	s.Require().Len(slots, 2)
	s.fillBasket(slots[0].Code(), slots[1].Code())

	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.True(result.Valid)
	s.Empty(result.Problems)
	s.Len(result.Bookings, 2)
	for _, rb := range result.Bookings {
		s.True(rb.Booking.HasAttendee(s.customer.ID()))
		s.Equal(1, rb.Booking.AttendeeCount())
	}
}

func (s *CheckoutSuite) TestResolveRejectsStaleCode() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.fillBasket(slot.Code())

	s.Require().NoError(s.uow.TimetableRepo.Delete(s.ctx, entry.ID()))

	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Empty(result.Bookings)
	s.Require().Len(result.Problems, 1)
	s.Contains(result.Problems[0], "no longer offered")
}

func (s *CheckoutSuite) TestResolveRejectsCodeOutsideEntryHours() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[1]
	s.fillBasket(slot.Code())

	// Shrink the entry so the 9-10 slot is no longer derivable from it.
	shrunk := schedule.ReconstructTimetableEntry(
		entry.ID(), entry.Activity(), entry.Facility(), entry.Weekday(), 8, 9)
	s.Require().NoError(s.uow.TimetableRepo.Update(s.ctx, shrunk))

	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Contains(result.Problems[0], "no longer offered")
}

func (s *CheckoutSuite) TestResolveMergesIntoExistingBooking() {
	entry := s.addEntry(schedule.ActivityLaneSwim, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]

	other := uuid.New()
	s.persistBooking(slot, other)
	existing, err := s.uow.BookingRepo.FindByKey(s.ctx, slot.Key())
	s.Require().NoError(err)

	s.fillBasket(slot.Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.True(result.Valid)
	s.Require().Len(result.Bookings, 1)
	merged := result.Bookings[0].Booking
	s.Equal(existing.ID(), merged.ID())
	s.True(merged.HasAttendee(other))
	s.True(merged.HasAttendee(s.customer.ID()))
	s.Equal(2, merged.AttendeeCount())
}

func (s *CheckoutSuite) TestResolveRejectsFullFacility() {
	squash, err := schedule.NewFacility(schedule.FacilitySquash, 8, 22, 1)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, squash))

	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilitySquash, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.persistBooking(slot, uuid.New())

	s.fillBasket(slot.Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Require().Len(result.Problems, 1)
	s.Contains(result.Problems[0], "fully booked")

	// The full session still shows up in the verdict with the customer
	// tentatively added; only validity keeps it out of the ledger.
	s.Require().Len(result.Bookings, 1)
	s.True(result.Bookings[0].Booking.HasAttendee(s.customer.ID()))
}

func (s *CheckoutSuite) TestFullFacilityStillFlagsClashes() {
	squash, err := schedule.NewFacility(schedule.FacilitySquash, 8, 22, 1)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, squash))
	hall, err := schedule.NewFacility(schedule.FacilityHall, 8, 22, 30)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, hall))

	squashEntry := s.addEntry(schedule.ActivityGeneral, schedule.FacilitySquash, schedule.Monday, 9, 10)
	hallEntry := s.addEntry(schedule.ActivityTeam, schedule.FacilityHall, schedule.Monday, 9, 11)

	squashSlot := schedule.GenerateSlots(squashEntry, monday)[0]
	hallSlot := schedule.GenerateSlots(hallEntry, monday)[0]
	s.Require().True(squashSlot.Start.Equal(hallSlot.Start))
	s.persistBooking(squashSlot, uuid.New())

	s.fillBasket(squashSlot.Code(), hallSlot.Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Len(result.Bookings, 2)
	s.Require().Len(result.Problems, 2)
	s.Contains(result.Problems[0], "fully booked")
	s.Contains(result.Problems[1], "more than one session starting at")
}

func (s *CheckoutSuite) TestCapacityCountsAcrossActivitiesInSameWindow() {
	// Two attendees are swimming lanes 8-9; the pool holds two people, so a
	// general swim in the same window has no room left.
	small, err := schedule.NewFacility(schedule.FacilityPool, 8, 22, 2)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, small))

	laneEntry := s.addEntry(schedule.ActivityLaneSwim, schedule.FacilityPool, schedule.Monday, 8, 10)
	laneSlot := schedule.GenerateSlots(laneEntry, monday)[0]
	s.persistBooking(laneSlot, uuid.New(), uuid.New())

	generalEntry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	generalSlot := schedule.GenerateSlots(generalEntry, monday)[0]

	s.fillBasket(generalSlot.Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Contains(result.Problems[0], "fully booked")
}

func (s *CheckoutSuite) TestResolveFlagsClashingStartTimes() {
	poolEntry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 9, 10)
	hallEntry := s.addEntry(schedule.ActivityTeam, schedule.FacilityHall, schedule.Monday, 9, 11)
	hall, err := schedule.NewFacility(schedule.FacilityHall, 8, 22, 30)
	s.Require().NoError(err)
	s.Require().NoError(s.uow.FacilityRepo.Save(s.ctx, hall))

	poolSlot := schedule.GenerateSlots(poolEntry, monday)[0]
	hallSlot := schedule.GenerateSlots(hallEntry, monday)[0]
	s.Require().True(poolSlot.Start.Equal(hallSlot.Start))

	s.fillBasket(poolSlot.Code(), hallSlot.Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Require().Len(result.Problems, 1)
	s.Contains(result.Problems[0], "more than one session starting at")
}

func (s *CheckoutSuite) TestResolveMalformedCodeBecomesProblem() {
	s.fillBasket("not-a-code")

	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Contains(result.Problems[0], "not a recognised session")
}

func (s *CheckoutSuite) TestDiscountNeedsThreeSessionsInAWeek() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 12)
	slots := schedule.GenerateSlots(entry, monday)
	s.Require().Len(slots, 4)

	s.fillBasket(slots[0].Code(), slots[1].Code())
	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.False(result.DiscountEligible)

	s.fillBasket(slots[2].Code())
	result, err = s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.True(result.DiscountEligible)
}

func (s *CheckoutSuite) TestMembersSkipPayment() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.fillBasket(slot.Code())

	result, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.True(result.RequiresPayment)

	expiry := s.clock.Now().AddDate(0, 1, 0)
	s.customer.SetMembership(user.MembershipMonth, &expiry)
	s.Require().NoError(s.uow.UserRepo.UpdateMembership(s.ctx, s.customer))

	result, err = s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.False(result.RequiresPayment)
}

func (s *CheckoutSuite) TestCommitPersistsClearsAndPublishes() {
	s.grantMembership()
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slots := schedule.GenerateSlots(entry, monday)
	s.fillBasket(slots[0].Code(), slots[1].Code())

	result, err := s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.True(result.Valid)

	stored := s.uow.BookingRepo.All()
	s.Len(stored, 2)
	for _, b := range stored {
		s.True(b.HasAttendee(s.customer.ID()))
	}

	b, err := s.store.Get(s.ctx, s.customer.ID().String())
	s.Require().NoError(err)
	s.True(b.IsEmpty())

	s.Equal([]string{"booking.confirmed", "booking.confirmed"}, s.publisher.Keys())
}

func (s *CheckoutSuite) TestCommitRefusesInvalidBasket() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.fillBasket(slot.Code(), "garbage")

	result, err := s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().ErrorIs(err, errs.ErrCheckoutInvalid)
	s.Require().NotNil(result)
	s.False(result.Valid)

	s.Empty(s.uow.BookingRepo.All())
	s.Empty(s.publisher.Keys())

	b, err := s.store.Get(s.ctx, s.customer.ID().String())
	s.Require().NoError(err)
	s.Equal(2, b.Len())
}

func (s *CheckoutSuite) TestCommitRequiresPaymentForNonMembers() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.fillBasket(slot.Code())

	result, err := s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().ErrorIs(err, errs.ErrPaymentRequired)
	s.Require().NotNil(result)
	s.True(result.Valid)
	s.True(result.RequiresPayment)

	// Nothing persists until the payment lands, and the basket survives.
	s.Empty(s.uow.BookingRepo.All())
	s.Empty(s.publisher.Keys())
	b, err := s.store.Get(s.ctx, s.customer.ID().String())
	s.Require().NoError(err)
	s.Equal(1, b.Len())
}

func (s *CheckoutSuite) TestCommitConfirmedPersistsForNonMembers() {
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]
	s.fillBasket(slot.Code())

	result, err := s.checkout.CommitConfirmed(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.True(result.Valid)
	s.True(result.RequiresPayment)

	stored := s.uow.BookingRepo.All()
	s.Require().Len(stored, 1)
	s.True(stored[0].HasAttendee(s.customer.ID()))

	b, err := s.store.Get(s.ctx, s.customer.ID().String())
	s.Require().NoError(err)
	s.True(b.IsEmpty())
}

func (s *CheckoutSuite) TestCommitTwiceIsIdempotent() {
	s.grantMembership()
	entry := s.addEntry(schedule.ActivityGeneral, schedule.FacilityPool, schedule.Monday, 8, 10)
	slot := schedule.GenerateSlots(entry, monday)[0]

	s.fillBasket(slot.Code())
	_, err := s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().NoError(err)

	s.fillBasket(slot.Code())
	result, err := s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.True(result.Valid)

	stored := s.uow.BookingRepo.All()
	s.Require().Len(stored, 1)
	s.Equal(1, stored[0].AttendeeCount())
}

func (s *CheckoutSuite) TestEmptyBasket() {
	_, err := s.checkout.Resolve(s.ctx, s.customer.ID())
	s.Require().ErrorIs(err, errs.ErrEmptyBasket)

	_, err = s.checkout.Commit(s.ctx, s.customer.ID())
	s.Require().ErrorIs(err, errs.ErrEmptyBasket)
}

func (s *CheckoutSuite) grantMembership() {
	expiry := s.clock.Now().AddDate(1, 0, 0)
	s.customer.SetMembership(user.MembershipYear, &expiry)
	s.Require().NoError(s.uow.UserRepo.UpdateMembership(s.ctx, s.customer))
}

func (s *CheckoutSuite) persistBooking(slot schedule.Slot, attendees ...uuid.UUID) {
	b := booking.FromSlot(slot)
	for _, a := range attendees {
		b.AddAttendee(a)
	}
	s.Require().NoError(s.uow.BookingRepo.Upsert(s.ctx, b))
}
