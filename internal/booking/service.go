// AngelaMos | 2026
// service.go

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitsyy/gym-backend/internal/access"
	"github.com/fitsyy/gym-backend/internal/core"
	"github.com/fitsyy/gym-backend/internal/member"
)

type Service struct {
	store     Store
	evaluator *access.Evaluator
	metrics   *Metrics
}

func NewService(store Store, evaluator *access.Evaluator, metrics *Metrics) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{store: store, evaluator: evaluator, metrics: metrics}
}

// CreateBooking books memberID onto slotID. The occupancy and duplicate
// checks here only short-circuit; the store re-validates under a lock and
// its verdict is final.
func (s *Service) CreateBooking(
	ctx context.Context,
	caller access.Caller,
	slotID, memberID string,
) (*Booking, error) {
	ctx, span := core.StartSpan(ctx, "booking.create",
		attribute.String("tenant.id", caller.TenantID),
		attribute.String("slot.id", slotID),
	)
	defer span.End()

	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionBookingWrite); err != nil {
		return nil, err
	}

	occ, err := s.store.Occupancy(ctx, caller.TenantID, slotID)
	if err != nil {
		return nil, slotError(err)
	}

	ok, err := s.store.MemberExists(ctx, caller.TenantID, memberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.NotFoundError("member")
	}

	if err := s.precheck(ctx, caller.TenantID, slotID, memberID, occ); err != nil {
		return nil, s.reject(ctx, err)
	}

	b := &Booking{
		ID:       uuid.New().String(),
		TenantID: caller.TenantID,
		SlotID:   slotID,
		MemberID: memberID,
		Status:   StatusBooked,
	}

	if err := s.store.Insert(ctx, b); err != nil {
		if isRejection(err) {
			return nil, s.reject(ctx, err)
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.metrics.Created().Inc()
	slog.InfoContext(ctx, "booking created",
		"tenant_id", b.TenantID,
		"booking_id", b.ID,
		"slot_id", slotID,
		"member_id", memberID,
	)

	return b, nil
}

// TransitionStatus applies one step of Lifecycle. Re-entering BOOKED is
// checked exactly like a new booking.
func (s *Service) TransitionStatus(
	ctx context.Context,
	caller access.Caller,
	bookingID string,
	to Status,
) (*Booking, error) {
	ctx, span := core.StartSpan(ctx, "booking.transition",
		attribute.String("tenant.id", caller.TenantID),
		attribute.String("booking.id", bookingID),
		attribute.String("booking.to", string(to)),
	)
	defer span.End()

	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionBookingWrite); err != nil {
		return nil, err
	}

	b, err := s.store.Get(ctx, caller.TenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, to) {
		return nil, fmt.Errorf(
			"cannot change booking from %s to %s: %w",
			b.Status, to, core.ErrInvalidInput,
		)
	}

	if to.Active() {
		occ, err := s.store.Occupancy(ctx, caller.TenantID, b.SlotID)
		if err != nil {
			return nil, slotError(err)
		}
		if err := s.precheck(ctx, caller.TenantID, b.SlotID, b.MemberID, occ); err != nil {
			return nil, s.reject(ctx, err)
		}
	}

	if err := s.store.UpdateStatus(ctx, caller.TenantID, bookingID, b.Status, to); err != nil {
		if isRejection(err) {
			return nil, s.reject(ctx, err)
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	if to.Active() {
		s.metrics.Created().Inc()
	}

	slog.InfoContext(ctx, "booking status changed",
		"tenant_id", caller.TenantID,
		"booking_id", bookingID,
		"from", string(b.Status),
		"to", string(to),
	)

	return s.store.Get(ctx, caller.TenantID, bookingID)
}

func (s *Service) DeleteBooking(ctx context.Context, caller access.Caller, bookingID string) error {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionBookingWrite); err != nil {
		return err
	}
	return s.store.Delete(ctx, caller.TenantID, bookingID)
}

func (s *Service) ListSlotBookings(
	ctx context.Context,
	caller access.Caller,
	slotID string,
) (*SlotBookings, error) {
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionTenantRead); err != nil {
		return nil, err
	}

	occ, err := s.store.Occupancy(ctx, caller.TenantID, slotID)
	if err != nil {
		return nil, slotError(err)
	}

	bookings, err := s.store.ListBySlot(ctx, caller.TenantID, slotID)
	if err != nil {
		return nil, err
	}

	return &SlotBookings{SlotID: slotID, Occupancy: occ, Bookings: bookings}, nil
}

// QuickCreateAndBook registers a new member and books them onto slotID in
// one transaction. Neither row exists if the booking is rejected.
func (s *Service) QuickCreateAndBook(
	ctx context.Context,
	caller access.Caller,
	slotID string,
	in member.Input,
) (*Booking, *member.Member, error) {
	ctx, span := core.StartSpan(ctx, "booking.quick_create",
		attribute.String("tenant.id", caller.TenantID),
		attribute.String("slot.id", slotID),
	)
	defer span.End()

	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionBookingWrite); err != nil {
		return nil, nil, err
	}
	if _, err := s.evaluator.Authorize(ctx, caller, access.ActionMemberWrite); err != nil {
		return nil, nil, err
	}

	m, err := member.NewMember(caller.TenantID, in)
	if err != nil {
		return nil, nil, err
	}

	occ, err := s.store.Occupancy(ctx, caller.TenantID, slotID)
	if err != nil {
		return nil, nil, slotError(err)
	}
	if occ.Full() {
		return nil, nil, s.reject(ctx, fmt.Errorf("quick booking: %w", core.ErrCapacityExceeded))
	}

	b := &Booking{
		ID:       uuid.New().String(),
		TenantID: caller.TenantID,
		SlotID:   slotID,
		MemberID: m.ID,
		Status:   StatusBooked,
	}
	name := m.FullName
	b.MemberName = &name

	if err := s.store.InsertWithMember(ctx, m, b); err != nil {
		if isRejection(err) {
			return nil, nil, s.reject(ctx, err)
		}
		core.SetSpanError(ctx, err)
		return nil, nil, err
	}

	s.metrics.Created().Inc()
	slog.InfoContext(ctx, "member created and booked",
		"tenant_id", caller.TenantID,
		"booking_id", b.ID,
		"member_id", m.ID,
		"slot_id", slotID,
	)

	return b, m, nil
}

func (s *Service) precheck(
	ctx context.Context,
	tenantID, slotID, memberID string,
	occ Occupancy,
) error {
	if occ.Full() {
		return fmt.Errorf("slot %s is full: %w", slotID, core.ErrCapacityExceeded)
	}

	dup, err := s.store.HasActiveBooking(ctx, tenantID, slotID, memberID)
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("member %s on slot %s: %w", memberID, slotID, core.ErrDuplicateBooking)
	}

	return nil
}

func (s *Service) reject(ctx context.Context, err error) error {
	reason := rejectionReason(err)
	if reason == "" {
		return err
	}

	s.metrics.Rejections(reason).Inc()
	core.AddSpanEvent(ctx, "booking.rejected", attribute.String("reason", reason))
	slog.DebugContext(ctx, "booking rejected", "reason", reason, "error", err)

	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, core.ErrCapacityExceeded):
		return reasonCapacity
	case errors.Is(err, core.ErrDuplicateBooking):
		return reasonDuplicate
	}
	return ""
}

func isRejection(err error) bool {
	return rejectionReason(err) != ""
}

func slotError(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("slot")
	}
	return err
}
