// AngelaMos | 2026
// fakes_test.go

package booking_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fitsyy/gym-backend/internal/booking"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/member"
)

type memSlot struct {
	tenantID string
	capacity int
}

// memStore mirrors the Postgres store: Insert and UpdateStatus re-check
// capacity and duplicates under one lock.
type memStore struct {
	mu       sync.Mutex
	slots    map[string]memSlot
	members  map[string]string
	names    map[string]string
	bookings map[string]*booking.Booking
	seq      int

	// stale makes the read-side checks report an empty slot and no
	// duplicates, as if they raced with other writers.
	stale bool
}

func newMemStore() *memStore {
	return &memStore{
		slots:    make(map[string]memSlot),
		members:  make(map[string]string),
		names:    make(map[string]string),
		bookings: make(map[string]*booking.Booking),
	}
}

func (s *memStore) addSlot(tenantID, slotID string, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slotID] = memSlot{tenantID: tenantID, capacity: capacity}
}

func (s *memStore) addMember(tenantID, memberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberID] = tenantID
	s.names[memberID] = "Member " + memberID
}

func (s *memStore) bookedLocked(slotID string) int {
	n := 0
	for _, b := range s.bookings {
		if b.SlotID == slotID && b.Status == booking.StatusBooked {
			n++
		}
	}
	return n
}

func (s *memStore) activeLocked(slotID, memberID string) bool {
	for _, b := range s.bookings {
		if b.SlotID == slotID && b.MemberID == memberID && b.Status == booking.StatusBooked {
			return true
		}
	}
	return false
}

func (s *memStore) countBooked(slotID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookedLocked(slotID)
}

func (s *memStore) rows(slotID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.SlotID == slotID {
			n++
		}
	}
	return n
}

func (s *memStore) memberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

func (s *memStore) Occupancy(_ context.Context, tenantID, slotID string) (booking.Occupancy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok || slot.tenantID != tenantID {
		return booking.Occupancy{}, fmt.Errorf("slot occupancy: slot: %w", core.ErrNotFound)
	}
	occ := booking.Occupancy{Capacity: slot.capacity}
	if !s.stale {
		occ.Booked = s.bookedLocked(slotID)
	}
	return occ, nil
}

func (s *memStore) MemberExists(_ context.Context, tenantID, memberID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[memberID] == tenantID, nil
}

func (s *memStore) HasActiveBooking(_ context.Context, _, slotID, memberID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		return false, nil
	}
	return s.activeLocked(slotID, memberID), nil
}

func (s *memStore) insertLocked(b *booking.Booking) error {
	slot, ok := s.slots[b.SlotID]
	if !ok || slot.tenantID != b.TenantID {
		return fmt.Errorf("insert booking: slot or member: %w", core.ErrNotFound)
	}
	if s.bookedLocked(b.SlotID) >= slot.capacity {
		return fmt.Errorf("insert booking: %w", core.ErrCapacityExceeded)
	}
	if s.activeLocked(b.SlotID, b.MemberID) {
		return fmt.Errorf("insert booking: %w", core.ErrDuplicateBooking)
	}
	s.seq++
	b.CreatedAt = time.Unix(int64(s.seq), 0)
	b.UpdatedAt = b.CreatedAt
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) Insert(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(b)
}

func (s *memStore) InsertWithMember(_ context.Context, m *member.Member, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m.TenantID
	if err := s.insertLocked(b); err != nil {
		delete(s.members, m.ID)
		return err
	}
	s.names[m.ID] = m.FullName
	return nil
}

func (s *memStore) Get(_ context.Context, tenantID, id string) (*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, fmt.Errorf("get booking: %w", core.ErrNotFound)
	}
	cp := *b
	name := s.names[b.MemberID]
	cp.MemberName = &name
	return &cp, nil
}

func (s *memStore) UpdateStatus(_ context.Context, tenantID, id string, from, to booking.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.TenantID != tenantID {
		return fmt.Errorf("update booking status: %w", core.ErrNotFound)
	}
	if to == booking.StatusBooked {
		if s.bookedLocked(b.SlotID) >= s.slots[b.SlotID].capacity {
			return fmt.Errorf("update booking status: %w", core.ErrCapacityExceeded)
		}
		if s.activeLocked(b.SlotID, b.MemberID) {
			return fmt.Errorf("update booking status: %w", core.ErrDuplicateBooking)
		}
	}
	if b.Status != from {
		return fmt.Errorf("booking status changed concurrently, reload and retry: %w", core.ErrInvalidInput)
	}
	b.Status = to
	return nil
}

func (s *memStore) Delete(_ context.Context, tenantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.TenantID != tenantID {
		return fmt.Errorf("delete booking: %w", core.ErrNotFound)
	}
	delete(s.bookings, id)
	return nil
}

func (s *memStore) ListBySlot(_ context.Context, tenantID, slotID string) ([]booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Booking
	for _, b := range s.bookings {
		if b.TenantID == tenantID && b.SlotID == slotID {
			cp := *b
			name := s.names[b.MemberID]
			cp.MemberName = &name
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
