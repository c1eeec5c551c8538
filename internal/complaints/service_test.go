package complaints

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/internal/notifications"
)

type fakeComplaintRepo struct {
	store map[uuid.UUID]*Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{store: make(map[uuid.UUID]*Complaint)}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, complaint *Complaint) error {
	complaint.ID = uuid.New()
	complaint.CreatedAt = time.Now()
	copied := *complaint
	r.store[complaint.ID] = &copied
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	complaint, ok := r.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *complaint
	return &copied, nil
}

func (r *fakeComplaintRepo) List(ctx context.Context, query ComplaintListQuery) ([]Complaint, int64, error) {
	var out []Complaint
	for _, complaint := range r.store {
		if query.Status != "" && string(complaint.Status) != query.Status {
			continue
		}
		out = append(out, *complaint)
	}
	return out, int64(len(out)), nil
}

func (r *fakeComplaintRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	complaint, ok := r.store[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"]; ok {
		complaint.Status = v.(ComplaintStatus)
	}
	if v, ok := updates["admin_reply"]; ok {
		complaint.AdminReply = v.(string)
	}
	if v, ok := updates["replied_by"]; ok {
		adminID := v.(uuid.UUID)
		complaint.RepliedBy = &adminID
	}
	if v, ok := updates["replied_at"]; ok {
		repliedAt := v.(time.Time)
		complaint.RepliedAt = &repliedAt
	}
	return nil
}

func (r *fakeComplaintRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store, id)
	return nil
}

type recordingNotifier struct {
	sent []*notifications.EmailNotification
}

func (n *recordingNotifier) SendNotification(ctx context.Context, notification *notifications.EmailNotification) error {
	n.sent = append(n.sent, notification)
	return nil
}

func TestCreateComplaintStartsOpen(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewService(repo, &recordingNotifier{})

	created, err := svc.CreateComplaint(context.Background(), CreateComplaintRequest{
		Name:    "Budi Santoso",
		Email:   "budi@example.com",
		Subject: "Broken ticket gate",
		Message: "The entrance gate scanner was out of order on my visit.",
	})
	if err != nil {
		t.Fatalf("CreateComplaint returned error: %v", err)
	}
	if created.Status != StatusOpen {
		t.Fatalf("new complaint status = %s, want OPEN", created.Status)
	}
	if created.AdminReply != "" || created.RepliedAt != nil {
		t.Fatalf("new complaint must not carry a reply")
	}
}

func TestCreateComplaintRejectsBadDestinationID(t *testing.T) {
	svc := NewService(newFakeComplaintRepo(), nil)

	_, err := svc.CreateComplaint(context.Background(), CreateComplaintRequest{
		Name:          "Budi Santoso",
		Email:         "budi@example.com",
		Subject:       "Broken ticket gate",
		Message:       "The entrance gate scanner was out of order on my visit.",
		DestinationID: "not-a-uuid",
	})
	if err == nil {
		t.Fatalf("expected an error for a malformed destination id")
	}
}

func TestResolveComplaintSetsReplyAndNotifies(t *testing.T) {
	repo := newFakeComplaintRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier)
	ctx := context.Background()

	created, err := svc.CreateComplaint(ctx, CreateComplaintRequest{
		Name:    "Budi Santoso",
		Email:   "budi@example.com",
		Subject: "Broken ticket gate",
		Message: "The entrance gate scanner was out of order on my visit.",
	})
	if err != nil {
		t.Fatalf("CreateComplaint returned error: %v", err)
	}
	complaintID := uuid.MustParse(created.ID)
	adminID := uuid.New()

	resolved, err := svc.ResolveComplaint(ctx, complaintID, adminID, ResolveComplaintRequest{
		Reply: "Thanks for the report, the gate has been repaired.",
	})
	if err != nil {
		t.Fatalf("ResolveComplaint returned error: %v", err)
	}
	if resolved.Status != StatusResolved {
		t.Fatalf("status = %s, want RESOLVED", resolved.Status)
	}
	if resolved.AdminReply == "" || resolved.RepliedAt == nil {
		t.Fatalf("resolved complaint must carry the reply and timestamp")
	}

	stored, _ := repo.GetByID(ctx, complaintID)
	if stored.RepliedBy == nil || *stored.RepliedBy != adminID {
		t.Fatalf("replied_by not recorded")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notification count = %d, want 1", len(notifier.sent))
	}
	sent := notifier.sent[0]
	if sent.RecipientEmail != "budi@example.com" {
		t.Fatalf("notification recipient = %s", sent.RecipientEmail)
	}
	if sent.Type != notifications.NotificationTypeComplaintReplied {
		t.Fatalf("notification type = %s", sent.Type)
	}
}

func TestResolveComplaintUnknownID(t *testing.T) {
	svc := NewService(newFakeComplaintRepo(), nil)

	_, err := svc.ResolveComplaint(context.Background(), uuid.New(), uuid.New(), ResolveComplaintRequest{Reply: "done"})
	if !errors.Is(err, ErrComplaintNotFound) {
		t.Fatalf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestDeleteComplaintUnknownID(t *testing.T) {
	svc := NewService(newFakeComplaintRepo(), nil)

	if err := svc.DeleteComplaint(context.Background(), uuid.New()); !errors.Is(err, ErrComplaintNotFound) {
		t.Fatalf("expected ErrComplaintNotFound, got %v", err)
	}
}

func TestListComplaintsFiltersByStatus(t *testing.T) {
	repo := newFakeComplaintRepo()
	svc := NewService(repo, &recordingNotifier{})
	ctx := context.Background()

	first, _ := svc.CreateComplaint(ctx, CreateComplaintRequest{
		Name: "Budi Santoso", Email: "budi@example.com",
		Subject: "Broken ticket gate", Message: "The entrance gate scanner was out of order.",
	})
	if _, err := svc.CreateComplaint(ctx, CreateComplaintRequest{
		Name: "Siti Rahma", Email: "siti@example.com",
		Subject: "Dirty restrooms", Message: "Restrooms near the parking lot need attention.",
	}); err != nil {
		t.Fatalf("CreateComplaint returned error: %v", err)
	}

	if _, err := svc.ResolveComplaint(ctx, uuid.MustParse(first.ID), uuid.New(), ResolveComplaintRequest{
		Reply: "Fixed, thank you.",
	}); err != nil {
		t.Fatalf("ResolveComplaint returned error: %v", err)
	}

	open, err := svc.ListComplaints(ctx, ComplaintListQuery{Page: 1, Limit: 20, Status: "OPEN"})
	if err != nil {
		t.Fatalf("ListComplaints returned error: %v", err)
	}
	if open.Total != 1 {
		t.Fatalf("open complaints = %d, want 1", open.Total)
	}
	if open.Complaints[0].Subject != "Dirty restrooms" {
		t.Fatalf("wrong complaint returned: %s", open.Complaints[0].Subject)
	}
}
