// Package fakes provides in-memory repository and port implementations for
// usecase and handler tests.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/usecase/shared"
)

// UnitOfWork runs transaction functions directly against the in-memory
// repositories. There is no rollback: a test that needs to observe
// "nothing was written" must make the failing step come before any write,
// which mirrors how the production resolver orders its work.
type UnitOfWork struct {
	BookingRepo   *BookingRepo
	TimetableRepo *TimetableRepo
	FacilityRepo  *FacilityRepo
	UserRepo      *UserRepo
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		BookingRepo:   NewBookingRepo(),
		TimetableRepo: NewTimetableRepo(),
		FacilityRepo:  NewFacilityRepo(),
		UserRepo:      NewUserRepo(),
	}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *UnitOfWork) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *UnitOfWork) Repos() shared.Repositories { return u }

func (u *UnitOfWork) Bookings() shared.BookingRepository    { return u.BookingRepo }
func (u *UnitOfWork) Timetable() shared.TimetableRepository { return u.TimetableRepo }
func (u *UnitOfWork) Facilities() shared.FacilityRepository { return u.FacilityRepo }
func (u *UnitOfWork) Users() shared.UserRepository          { return u.UserRepo }

type BookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *BookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return clone(b), nil
}

func (r *BookingRepo) FindByKey(_ context.Context, key schedule.NaturalKey) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Key().Equal(key) {
			return clone(b), nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (r *BookingRepo) FindOverlapping(_ context.Context, facility schedule.FacilityID, start, end time.Time) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.Facility() == facility && b.Start().Equal(start) && b.End().Equal(end) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r *BookingRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*booking.Booking
	for _, b := range r.bookings {
		if b.HasAttendee(userID) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().Before(out[j].Start()) })
	return out, nil
}

func (r *BookingRepo) BookedIntervals(_ context.Context, userID uuid.UUID) ([]schedule.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []schedule.Interval
	for _, b := range r.bookings {
		if b.HasAttendee(userID) {
			out = append(out, schedule.Interval{Start: b.Start(), End: b.End()})
		}
	}
	return out, nil
}

func (r *BookingRepo) Upsert(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.bookings {
		if existing.Key().Equal(b.Key()) && id != b.ID() {
			delete(r.bookings, id)
		}
	}
	r.bookings[b.ID()] = clone(b)
	return nil
}

func (r *BookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(r.bookings, id)
	return nil
}

// All returns every stored booking, for asserting on ledger state.
func (r *BookingRepo) All() []*booking.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*booking.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, clone(b))
	}
	return out
}

func clone(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.Key(), b.IsClass(), b.Attendees(), b.CreatedAt())
}

type TimetableRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*schedule.TimetableEntry
}

func NewTimetableRepo() *TimetableRepo {
	return &TimetableRepo{entries: make(map[uuid.UUID]*schedule.TimetableEntry)}
}

func (r *TimetableRepo) FindByID(_ context.Context, id uuid.UUID) (*schedule.TimetableEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, infra.WrapRepoErr("timetable entry not found", nil, infra.KindNotFound)
	}
	return entry, nil
}

func (r *TimetableRepo) FindByWeekday(_ context.Context, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*schedule.TimetableEntry
	for _, entry := range r.entries {
		if entry.Weekday() == weekday {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Facility() != out[j].Facility() {
			return out[i].Facility() < out[j].Facility()
		}
		return out[i].OpenHour() < out[j].OpenHour()
	})
	return out, nil
}

func (r *TimetableRepo) FindMatching(_ context.Context, activity schedule.ActivityType, facility schedule.FacilityID, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*schedule.TimetableEntry
	for _, entry := range r.entries {
		if entry.Activity() == activity && entry.Facility() == facility && entry.Weekday() == weekday {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *TimetableRepo) FindAll(_ context.Context) ([]*schedule.TimetableEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*schedule.TimetableEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (r *TimetableRepo) Create(_ context.Context, entry *schedule.TimetableEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID()] = entry
	return nil
}

func (r *TimetableRepo) Update(_ context.Context, entry *schedule.TimetableEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID()]; !ok {
		return infra.WrapRepoErr("timetable entry not found", nil, infra.KindNotFound)
	}
	r.entries[entry.ID()] = entry
	return nil
}

func (r *TimetableRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return infra.WrapRepoErr("timetable entry not found", nil, infra.KindNotFound)
	}
	delete(r.entries, id)
	return nil
}

type FacilityRepo struct {
	mu         sync.Mutex
	facilities map[schedule.FacilityID]*schedule.Facility
}

func NewFacilityRepo() *FacilityRepo {
	return &FacilityRepo{facilities: make(map[schedule.FacilityID]*schedule.Facility)}
}

func (r *FacilityRepo) FindByID(_ context.Context, id schedule.FacilityID) (*schedule.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facilities[id]
	if !ok {
		return nil, infra.WrapRepoErr("facility not found", nil, infra.KindNotFound)
	}
	return f, nil
}

func (r *FacilityRepo) FindAll(_ context.Context) ([]*schedule.Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*schedule.Facility, 0, len(r.facilities))
	for _, f := range r.facilities {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *FacilityRepo) Save(_ context.Context, f *schedule.Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facilities[f.ID()] = f
	return nil
}

type UserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *UserRepo) UpdateMembership(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	r.users[u.ID()] = u
	return nil
}

// Publisher records published events for assertions.
type Publisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

type PublishedEvent struct {
	Key     string
	Payload any
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Key: key, Payload: v})
	return nil
}

// Keys returns the routing keys of everything published, in order.
func (p *Publisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		keys = append(keys, e.Key)
	}
	return keys
}
