package complaints

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wisata/internal/notifications"
	"wisata/pkg/logger"
)

var ErrComplaintNotFound = errors.New("complaint not found")

// Notifier sends the reply email when an admin resolves a complaint.
type Notifier interface {
	SendNotification(ctx context.Context, notification *notifications.EmailNotification) error
}

type Service interface {
	CreateComplaint(ctx context.Context, req CreateComplaintRequest) (*ComplaintResponse, error)
	GetComplaint(ctx context.Context, id uuid.UUID) (*ComplaintResponse, error)
	ListComplaints(ctx context.Context, query ComplaintListQuery) (*PaginatedComplaints, error)
	ResolveComplaint(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req ResolveComplaintRequest) (*ComplaintResponse, error)
	DeleteComplaint(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	notifier Notifier
	logger   *logger.Logger
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		logger:   logger.GetDefault(),
	}
}

func (s *service) CreateComplaint(ctx context.Context, req CreateComplaintRequest) (*ComplaintResponse, error) {
	complaint := &Complaint{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  StatusOpen,
	}

	if req.DestinationID != "" {
		destinationID, err := uuid.Parse(req.DestinationID)
		if err != nil {
			return nil, fmt.Errorf("invalid destination id: %w", err)
		}
		complaint.DestinationID = &destinationID
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	response := complaint.ToResponse()
	return &response, nil
}

func (s *service) GetComplaint(ctx context.Context, id uuid.UUID) (*ComplaintResponse, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	response := complaint.ToResponse()
	return &response, nil
}

func (s *service) ListComplaints(ctx context.Context, query ComplaintListQuery) (*PaginatedComplaints, error) {
	complaints, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		responses = append(responses, complaints[i].ToResponse())
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	return &PaginatedComplaints{
		Complaints: responses,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ResolveComplaint(ctx context.Context, id uuid.UUID, adminID uuid.UUID, req ResolveComplaintRequest) (*ComplaintResponse, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      StatusResolved,
		"admin_reply": req.Reply,
		"replied_by":  adminID,
		"replied_at":  now,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}

	s.notifyReply(ctx, complaint, req.Reply)

	return s.GetComplaint(ctx, id)
}

func (s *service) notifyReply(ctx context.Context, complaint *Complaint, reply string) {
	if s.notifier == nil {
		return
	}

	notification := notifications.NewEmailNotification(
		notifications.NotificationTypeComplaintReplied,
		complaint.Email,
		complaint.Name,
	)
	notification.Subject = fmt.Sprintf("Re: %s", complaint.Subject)
	notification.TemplateData = map[string]interface{}{
		"reply": reply,
	}

	if err := s.notifier.SendNotification(ctx, notification); err != nil {
		s.logger.ErrorWithContext(ctx, "failed to publish complaint reply notification", err, map[string]interface{}{
			"complaint_id": complaint.ID.String(),
		})
	}
}

func (s *service) DeleteComplaint(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		return err
	}
	return nil
}
