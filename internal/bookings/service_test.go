package bookings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/internal/notifications"
)

type fakeRepo struct {
	store       map[uuid.UUID]*Booking
	duplicates  int
	createCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepo) CreateWithVisitors(ctx context.Context, booking *Booking) error {
	r.createCalls++
	if r.duplicates > 0 {
		r.duplicates--
		return ErrDuplicateCode
	}
	booking.ID = uuid.New()
	for i := range booking.Visitors {
		booking.Visitors[i].ID = uuid.New()
		booking.Visitors[i].BookingID = booking.ID
	}
	booking.CreatedAt = time.Now()
	copied := *booking
	r.store[booking.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := r.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeRepo) GetByTransactionCode(ctx context.Context, code string) (*Booking, error) {
	for _, booking := range r.store {
		if booking.TransactionCode == code {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, booking := range r.store {
		out = append(out, *booking)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) SetPaymentStatus(ctx context.Context, id uuid.UUID, isPaid bool) (*Booking, error) {
	booking, ok := r.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	booking.IsPaid = isPaid
	if isPaid {
		now := time.Now()
		booking.PaidAt = &now
	} else {
		booking.PaidAt = nil
	}
	copied := *booking
	return &copied, nil
}

type fakeDraftStore struct {
	drafts map[string]*BookingDraft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]*BookingDraft)}
}

func (s *fakeDraftStore) Put(ctx context.Context, sessionID string, draft *BookingDraft) error {
	copied := *draft
	s.drafts[sessionID] = &copied
	return nil
}

func (s *fakeDraftStore) Get(ctx context.Context, sessionID string) (*BookingDraft, error) {
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *fakeDraftStore) Consume(ctx context.Context, sessionID string) (*BookingDraft, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	delete(s.drafts, sessionID)
	return draft, nil
}

func (s *fakeDraftStore) Restore(ctx context.Context, sessionID string, draft *BookingDraft) error {
	return s.Put(ctx, sessionID, draft)
}

func (s *fakeDraftStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.drafts, sessionID)
	return nil
}

type fakePricing struct {
	price float64
	err   error
}

func (p *fakePricing) PriceFor(ctx context.Context, destinationID uuid.UUID, visitDate time.Time) (float64, error) {
	return p.price, p.err
}

type fakeDestinations struct {
	bookable bool
	name     string
}

func (d *fakeDestinations) IsBookable(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.bookable, nil
}

func (d *fakeDestinations) DestinationName(ctx context.Context, id uuid.UUID) (string, error) {
	return d.name, nil
}

type fakeNotifier struct {
	created   int
	confirmed int
}

func (n *fakeNotifier) PublishBookingCreated(ctx context.Context, email notifications.BookingEmail) error {
	n.created++
	return nil
}

func (n *fakeNotifier) PublishPaymentConfirmed(ctx context.Context, email notifications.BookingEmail) error {
	n.confirmed++
	return nil
}

type serviceFixture struct {
	service  Service
	repo     *fakeRepo
	drafts   *fakeDraftStore
	pricing  *fakePricing
	notifier *fakeNotifier
}

func newServiceFixture() *serviceFixture {
	repo := newFakeRepo()
	drafts := newFakeDraftStore()
	pricing := &fakePricing{price: 15000}
	destinations := &fakeDestinations{bookable: true, name: "Pantai Pasir Putih"}
	notifier := &fakeNotifier{}
	return &serviceFixture{
		service:  NewService(repo, drafts, pricing, destinations, notifier),
		repo:     repo,
		drafts:   drafts,
		pricing:  pricing,
		notifier: notifier,
	}
}

func upcomingSaturday() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func validDraftRequest() StoreDraftRequest {
	return StoreDraftRequest{
		DestinationID: uuid.NewString(),
		VisitDate:     upcomingSaturday(),
		CustomerName:  "Siti Rahma",
		CustomerEmail: "siti@example.com",
		CustomerPhone: "081234567890",
		VehicleType:   "car",
		VehicleCount:  1,
		Visitors: []VisitorInput{
			{Name: "Siti Rahma", Age: 34, Email: "siti@example.com"},
			{Name: "Andi Rahma", Age: 36},
			{Name: "Dewi Rahma", Age: 8},
		},
		UnitPrice:   15000,
		TotalAmount: 45000,
	}
}

func confirmRequest() ConfirmBookingRequest {
	return ConfirmBookingRequest{
		BankName:        "BCA",
		BankAccountName: "Siti Rahma",
		BankAccountNo:   "1234567890",
		PaymentProofURL: "https://files.wisata.id/proofs/transfer.jpg",
	}
}

func TestStoreDraftRoundTrip(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	req := validDraftRequest()
	if _, err := fx.service.StoreDraft(ctx, "sess-1", req); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	draft, err := fx.service.GetDraft(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetDraft returned error: %v", err)
	}
	if draft.DestinationID != req.DestinationID {
		t.Fatalf("destination id changed: got %s want %s", draft.DestinationID, req.DestinationID)
	}
	if draft.VisitDate != req.VisitDate {
		t.Fatalf("visit date changed: got %s want %s", draft.VisitDate, req.VisitDate)
	}
	if len(draft.Visitors) != 3 {
		t.Fatalf("visitor count changed: got %d want 3", len(draft.Visitors))
	}
	if draft.TotalAmount != 45000 {
		t.Fatalf("total changed: got %v want 45000", draft.TotalAmount)
	}
}

func TestStoreDraftOverwritesPriorDraft(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	first := validDraftRequest()
	if _, err := fx.service.StoreDraft(ctx, "sess-1", first); err != nil {
		t.Fatalf("first StoreDraft returned error: %v", err)
	}

	second := validDraftRequest()
	second.Visitors = second.Visitors[:1]
	second.TotalAmount = 15000
	if _, err := fx.service.StoreDraft(ctx, "sess-1", second); err != nil {
		t.Fatalf("second StoreDraft returned error: %v", err)
	}

	draft, err := fx.service.GetDraft(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetDraft returned error: %v", err)
	}
	if len(draft.Visitors) != 1 || draft.TotalAmount != 15000 {
		t.Fatalf("second draft did not replace the first: visitors=%d total=%v", len(draft.Visitors), draft.TotalAmount)
	}
}

func TestStoreDraftRejectsUnbookableDestination(t *testing.T) {
	repo := newFakeRepo()
	drafts := newFakeDraftStore()
	svc := NewService(repo, drafts, &fakePricing{price: 15000}, &fakeDestinations{bookable: false}, &fakeNotifier{})

	_, err := svc.StoreDraft(context.Background(), "sess-1", validDraftRequest())
	if !errors.Is(err, ErrDestinationNotBookable) {
		t.Fatalf("expected ErrDestinationNotBookable, got %v", err)
	}
}

func TestStoreDraftRejectsPastVisitDate(t *testing.T) {
	fx := newServiceFixture()

	req := validDraftRequest()
	req.VisitDate = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := fx.service.StoreDraft(context.Background(), "sess-1", req)
	if !errors.Is(err, ErrInvalidVisitDate) {
		t.Fatalf("expected ErrInvalidVisitDate, got %v", err)
	}

	if _, err := fx.service.GetDraft(context.Background(), "sess-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("rejected draft must not be stored, got %v", err)
	}
}

func TestStoreDraftAcceptsTodayVisitDate(t *testing.T) {
	fx := newServiceFixture()

	req := validDraftRequest()
	req.VisitDate = time.Now().Format("2006-01-02")
	if _, err := fx.service.StoreDraft(context.Background(), "sess-1", req); err != nil {
		t.Fatalf("today's date should be accepted, got %v", err)
	}
}

func TestGetDraftWithoutPriorPut(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.GetDraft(context.Background(), "sess-unknown")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestConfirmBookingCreatesBookingWithVisitors(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	if _, err := fx.service.StoreDraft(ctx, "sess-1", validDraftRequest()); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	booking, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if err != nil {
		t.Fatalf("ConfirmBooking returned error: %v", err)
	}

	if booking.IsPaid {
		t.Fatalf("new booking must start unpaid")
	}
	if booking.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", booking.Quantity)
	}
	if len(booking.Visitors) != 3 {
		t.Fatalf("visitor rows = %d, want 3", len(booking.Visitors))
	}
	if booking.UnitPrice != 15000 || booking.TotalAmount != 45000 {
		t.Fatalf("pricing wrong: unit=%v total=%v", booking.UnitPrice, booking.TotalAmount)
	}

	codePattern := regexp.MustCompile(`^TRX-\d{8}-\d{4}$`)
	if !codePattern.MatchString(booking.TransactionCode) {
		t.Fatalf("transaction code %q does not match TRX-YYYYMMDD-NNNN", booking.TransactionCode)
	}

	if len(fx.repo.store) != 1 {
		t.Fatalf("exactly one booking row expected, got %d", len(fx.repo.store))
	}
	if fx.notifier.created != 1 {
		t.Fatalf("booking created notification count = %d, want 1", fx.notifier.created)
	}

	// The draft is consumed by a successful confirmation
	if _, err := fx.service.GetDraft(ctx, "sess-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("draft should be gone after confirmation, got %v", err)
	}
}

func TestConfirmBookingRecomputesAndRejectsMismatchedTotal(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	req := validDraftRequest()
	req.TotalAmount = 30000 // claims the weekday rate for a Saturday visit
	if _, err := fx.service.StoreDraft(ctx, "sess-1", req); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	_, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	if len(fx.repo.store) != 0 {
		t.Fatalf("no booking row should exist after a rejected total")
	}
	if fx.notifier.created != 0 {
		t.Fatalf("no notification should be published for a rejected booking")
	}

	// The draft is put back so the customer can correct it
	if _, err := fx.service.GetDraft(ctx, "sess-1"); err != nil {
		t.Fatalf("draft should be restored after rejection, got %v", err)
	}
}

func TestConfirmBookingWithoutDraft(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.ConfirmBooking(context.Background(), "sess-1", confirmRequest())
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestConfirmBookingSecondCallLosesRace(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	if _, err := fx.service.StoreDraft(ctx, "sess-1", validDraftRequest()); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	if _, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest()); err != nil {
		t.Fatalf("first ConfirmBooking returned error: %v", err)
	}

	// The draft was consumed, so a duplicate confirmation cannot create
	// a second booking.
	_, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("expected ErrDraftNotFound for the second confirmation, got %v", err)
	}
	if len(fx.repo.store) != 1 {
		t.Fatalf("exactly one booking expected, got %d", len(fx.repo.store))
	}
}

func TestConfirmBookingRetriesOnCodeCollision(t *testing.T) {
	fx := newServiceFixture()
	fx.repo.duplicates = 2
	ctx := context.Background()

	if _, err := fx.service.StoreDraft(ctx, "sess-1", validDraftRequest()); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	booking, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if err != nil {
		t.Fatalf("ConfirmBooking should survive code collisions, got %v", err)
	}
	if fx.repo.createCalls != 3 {
		t.Fatalf("create attempts = %d, want 3", fx.repo.createCalls)
	}
	if booking.TransactionCode == "" {
		t.Fatalf("booking has no transaction code")
	}
}

func TestConfirmBookingGivesUpAfterRepeatedCollisions(t *testing.T) {
	fx := newServiceFixture()
	fx.repo.duplicates = maxCodeAttempts + 1
	ctx := context.Background()

	if _, err := fx.service.StoreDraft(ctx, "sess-1", validDraftRequest()); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}

	_, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if !errors.Is(err, ErrCodeGeneration) {
		t.Fatalf("expected ErrCodeGeneration, got %v", err)
	}

	// Draft restored so the customer can try again later
	if _, err := fx.service.GetDraft(ctx, "sess-1"); err != nil {
		t.Fatalf("draft should be restored after a storage failure, got %v", err)
	}
}

func TestSettlePaymentFlipsFlagAndNotifiesOnce(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	if _, err := fx.service.StoreDraft(ctx, "sess-1", validDraftRequest()); err != nil {
		t.Fatalf("StoreDraft returned error: %v", err)
	}
	created, err := fx.service.ConfirmBooking(ctx, "sess-1", confirmRequest())
	if err != nil {
		t.Fatalf("ConfirmBooking returned error: %v", err)
	}
	bookingID := uuid.MustParse(created.ID)

	settled, err := fx.service.SettlePayment(ctx, bookingID, true, "admin-1")
	if err != nil {
		t.Fatalf("SettlePayment returned error: %v", err)
	}
	if !settled.IsPaid || settled.PaidAt == nil {
		t.Fatalf("booking should be paid with a timestamp")
	}
	if fx.notifier.confirmed != 1 {
		t.Fatalf("payment confirmed notification count = %d, want 1", fx.notifier.confirmed)
	}

	// Settling an already paid booking is a no-op and does not notify again
	again, err := fx.service.SettlePayment(ctx, bookingID, true, "admin-1")
	if err != nil {
		t.Fatalf("repeated SettlePayment returned error: %v", err)
	}
	if !again.IsPaid {
		t.Fatalf("booking should stay paid")
	}
	if fx.notifier.confirmed != 1 {
		t.Fatalf("repeated settlement must not publish again, count = %d", fx.notifier.confirmed)
	}

	// The flip can be reverted
	reverted, err := fx.service.SettlePayment(ctx, bookingID, false, "admin-1")
	if err != nil {
		t.Fatalf("revert SettlePayment returned error: %v", err)
	}
	if reverted.IsPaid || reverted.PaidAt != nil {
		t.Fatalf("booking should be unpaid after revert")
	}
}

func TestSettlePaymentUnknownBooking(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.SettlePayment(context.Background(), uuid.New(), true, "admin-1")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestGenerateTransactionCodeShape(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-09-05")
	codePattern := regexp.MustCompile(`^TRX-20260905-\d{4}$`)

	for i := 0; i < 50; i++ {
		code, err := generateTransactionCode(now)
		if err != nil {
			t.Fatalf("generateTransactionCode returned error: %v", err)
		}
		if !codePattern.MatchString(code) {
			t.Fatalf("code %q does not match the expected shape", code)
		}
	}
}
