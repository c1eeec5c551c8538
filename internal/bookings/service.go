package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/internal/notifications"
	"wisata/pkg/logger"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrDestinationNotBookable = errors.New("destination is not open for booking")
	ErrInvalidVisitDate       = errors.New("visit date must be today or later")
	ErrTotalMismatch          = errors.New("total amount does not match the server-side price")
	ErrCodeGeneration         = errors.New("could not generate a unique transaction code")
)

// maxCodeAttempts bounds transaction code regeneration when the random
// suffix collides with an existing booking on the same day.
const maxCodeAttempts = 5

// DestinationDirectory is the slice of the destinations service the
// booking flow needs.
type DestinationDirectory interface {
	IsBookable(ctx context.Context, id uuid.UUID) (bool, error)
	DestinationName(ctx context.Context, id uuid.UUID) (string, error)
}

// PricingService resolves the unit price for a destination and visit date.
type PricingService interface {
	PriceFor(ctx context.Context, destinationID uuid.UUID, visitDate time.Time) (float64, error)
}

// Notifier publishes booking lifecycle emails. Failures are logged, never
// surfaced to the customer.
type Notifier interface {
	PublishBookingCreated(ctx context.Context, email notifications.BookingEmail) error
	PublishPaymentConfirmed(ctx context.Context, email notifications.BookingEmail) error
}

type Service interface {
	StoreDraft(ctx context.Context, sessionID string, req StoreDraftRequest) (*BookingDraft, error)
	GetDraft(ctx context.Context, sessionID string) (*BookingDraft, error)
	ConfirmBooking(ctx context.Context, sessionID string, req ConfirmBookingRequest) (*BookingResponse, error)

	GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error)
	GetBookingByCode(ctx context.Context, code string) (*BookingResponse, error)
	ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	SettlePayment(ctx context.Context, id uuid.UUID, isPaid bool, adminID string) (*BookingResponse, error)
}

type service struct {
	repo         Repository
	drafts       DraftStore
	pricing      PricingService
	destinations DestinationDirectory
	notifier     Notifier
	logger       *logger.Logger
}

func NewService(repo Repository, drafts DraftStore, pricing PricingService, destinations DestinationDirectory, notifier Notifier) Service {
	return &service{
		repo:         repo,
		drafts:       drafts,
		pricing:      pricing,
		destinations: destinations,
		notifier:     notifier,
		logger:       logger.GetDefault(),
	}
}

func (s *service) StoreDraft(ctx context.Context, sessionID string, req StoreDraftRequest) (*BookingDraft, error) {
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination id: %w", err)
	}

	bookable, err := s.destinations.IsBookable(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, ErrDestinationNotBookable
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("invalid visit date: %w", err)
	}
	today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	if visitDate.Before(today) {
		return nil, ErrInvalidVisitDate
	}

	draft := &BookingDraft{
		DestinationID: req.DestinationID,
		VisitDate:     req.VisitDate,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		VehicleType:   req.VehicleType,
		VehicleCount:  req.VehicleCount,
		Visitors:      req.Visitors,
		UnitPrice:     req.UnitPrice,
		TotalAmount:   req.TotalAmount,
		CreatedAt:     time.Now(),
	}

	// A new draft replaces whatever the session held before.
	if err := s.drafts.Put(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	s.logger.LogDraftStored(ctx, sessionID, req.DestinationID)
	return draft, nil
}

func (s *service) GetDraft(ctx context.Context, sessionID string) (*BookingDraft, error) {
	return s.drafts.Get(ctx, sessionID)
}

func (s *service) ConfirmBooking(ctx context.Context, sessionID string, req ConfirmBookingRequest) (*BookingResponse, error) {
	// Consuming the draft atomically makes exactly one of any concurrent
	// confirmations proceed; the losers see ErrDraftNotFound.
	draft, err := s.drafts.Consume(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	booking, err := s.buildBooking(ctx, draft, req)
	if err != nil {
		s.restoreDraft(ctx, sessionID, draft)
		return nil, err
	}

	if err := s.createWithUniqueCode(ctx, booking); err != nil {
		s.restoreDraft(ctx, sessionID, draft)
		return nil, err
	}

	s.logger.LogBookingConfirmed(ctx, booking.ID.String(), booking.TransactionCode, booking.DestinationID.String())
	s.publishCreated(ctx, booking)

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) buildBooking(ctx context.Context, draft *BookingDraft, req ConfirmBookingRequest) (*Booking, error) {
	destinationID, err := uuid.Parse(draft.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination id in draft: %w", err)
	}

	visitDate, err := time.Parse("2006-01-02", draft.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("invalid visit date in draft: %w", err)
	}

	if len(draft.Visitors) == 0 {
		return nil, fmt.Errorf("draft has no visitors")
	}

	// Recompute the total from the catalog rather than trusting the
	// price the draft arrived with.
	unitPrice, err := s.pricing.PriceFor(ctx, destinationID, visitDate)
	if err != nil {
		return nil, err
	}

	quantity := len(draft.Visitors)
	expectedTotal := unitPrice * float64(quantity)
	if math.Abs(expectedTotal-draft.TotalAmount) > 0.01 {
		return nil, ErrTotalMismatch
	}

	visitors := make([]Visitor, 0, quantity)
	for _, v := range draft.Visitors {
		visitors = append(visitors, Visitor{
			Name:  v.Name,
			Age:   v.Age,
			Email: v.Email,
		})
	}

	return &Booking{
		CustomerName:    draft.CustomerName,
		CustomerEmail:   draft.CustomerEmail,
		CustomerPhone:   draft.CustomerPhone,
		DestinationID:   destinationID,
		VisitDate:       visitDate,
		VehicleType:     draft.VehicleType,
		VehicleCount:    draft.VehicleCount,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalAmount:     expectedTotal,
		BankName:        req.BankName,
		BankAccountName: req.BankAccountName,
		BankAccountNo:   req.BankAccountNo,
		PaymentProofURL: req.PaymentProofURL,
		IsPaid:          false,
		Visitors:        visitors,
	}, nil
}

func (s *service) createWithUniqueCode(ctx context.Context, booking *Booking) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateTransactionCode(time.Now())
		if err != nil {
			return err
		}
		booking.TransactionCode = code

		err = s.repo.CreateWithVisitors(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateCode) {
			return err
		}
	}
	return ErrCodeGeneration
}

// generateTransactionCode produces a human-readable code of the form
// TRX-20260901-0042.
func generateTransactionCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate transaction code: %w", err)
	}
	return fmt.Sprintf("TRX-%s-%04d", now.Format("20060102"), n.Int64()), nil
}

func (s *service) restoreDraft(ctx context.Context, sessionID string, draft *BookingDraft) {
	if err := s.drafts.Restore(ctx, sessionID, draft); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to restore booking draft", err, map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

func (s *service) publishCreated(ctx context.Context, booking *Booking) {
	if s.notifier == nil {
		return
	}

	email := s.bookingEmail(ctx, booking)
	if err := s.notifier.PublishBookingCreated(ctx, email); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish booking created notification", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}
}

func (s *service) bookingEmail(ctx context.Context, booking *Booking) notifications.BookingEmail {
	destinationName, err := s.destinations.DestinationName(ctx, booking.DestinationID)
	if err != nil {
		destinationName = ""
	}
	return notifications.BookingEmail{
		BookingID:       booking.ID,
		DestinationID:   booking.DestinationID,
		TransactionCode: booking.TransactionCode,
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		DestinationName: destinationName,
		VisitDate:       booking.VisitDate.Format("2006-01-02"),
		Quantity:        booking.Quantity,
		TotalAmount:     booking.TotalAmount,
	}
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetBookingByCode(ctx context.Context, code string) (*BookingResponse, error) {
	booking, err := s.repo.GetByTransactionCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	response := booking.ToResponse()
	return &response, nil
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	return &PaginatedBookings{
		Bookings:   responses,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) SettlePayment(ctx context.Context, id uuid.UUID, isPaid bool, adminID string) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	// Settling an already settled booking is a no-op.
	if booking.IsPaid == isPaid {
		response := booking.ToResponse()
		return &response, nil
	}

	updated, err := s.repo.SetPaymentStatus(ctx, id, isPaid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.logger.LogPaymentSettled(ctx, id.String(), isPaid, adminID)

	if isPaid && s.notifier != nil {
		email := s.bookingEmail(ctx, updated)
		if err := s.notifier.PublishPaymentConfirmed(ctx, email); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to publish payment confirmed notification", err, map[string]interface{}{
				"booking_id": id.String(),
			})
		}
	}

	response := updated.ToResponse()
	return &response, nil
}
