package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/logger"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationDriverVerified NotificationType = "DRIVER_VERIFIED"
	NotificationDriverRejected NotificationType = "DRIVER_REJECTED"
	NotificationRidePosted     NotificationType = "RIDE_POSTED"
	NotificationRideCancelled  NotificationType = "RIDE_CANCELLED"
	NotificationRideCompleted  NotificationType = "RIDE_COMPLETED"
)

// routingKeys maps notification types to broker routing keys.
var routingKeys = map[NotificationType]string{
	NotificationDriverVerified: "driver.verified",
	NotificationDriverRejected: "driver.rejected",
	NotificationRidePosted:     "ride.posted",
	NotificationRideCancelled:  "ride.cancelled",
	NotificationRideCompleted:  "ride.completed",
}

// Notification represents a notification to be sent.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipient_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Data        map[string]any   `json:"data"`
	CreatedAt   time.Time        `json:"created_at"`
}

// EventPublisher publishes JSON messages to a topic exchange.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, msg any) error
}

// NotificationService logs notifications and forwards them to the broker.
type NotificationService struct {
	log       logger.Logger
	publisher EventPublisher
	exchange  string
}

// NewNotificationService creates a new NotificationService. A nil publisher
// only logs.
func NewNotificationService(log logger.Logger, publisher EventPublisher, exchange string) *NotificationService {
	if log == nil {
		log = logger.NewNop()
	}
	return &NotificationService{
		log:       log,
		publisher: publisher,
		exchange:  exchange,
	}
}

// NotifyDriverVerified tells a driver their documents were approved.
func (s *NotificationService) NotifyDriverVerified(ctx context.Context, driver *domain.Driver) {
	s.send(ctx, Notification{
		Type:        NotificationDriverVerified,
		RecipientID: driver.ID,
		Title:       "Verification Approved",
		Message:     "Your documents have been verified. You can now post rides.",
		Data: map[string]any{
			"driver_id": driver.ID,
			"status":    driver.Status(),
		},
	})
}

// NotifyDriverRejected tells a driver why their documents were rejected.
func (s *NotificationService) NotifyDriverRejected(ctx context.Context, driver *domain.Driver) {
	s.send(ctx, Notification{
		Type:        NotificationDriverRejected,
		RecipientID: driver.ID,
		Title:       "Verification Rejected",
		Message:     fmt.Sprintf("Your documents were rejected: %s", driver.Reason()),
		Data: map[string]any{
			"driver_id": driver.ID,
			"status":    driver.Status(),
			"reason":    driver.Reason(),
		},
	})
}

// NotifyRidePosted announces a newly posted ride.
func (s *NotificationService) NotifyRidePosted(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRidePosted,
		RecipientID: ride.DriverID,
		Title:       "Ride Posted",
		Message:     fmt.Sprintf("Your ride from %s to %s is live", ride.Source, ride.Destination),
		Data: map[string]any{
			"ride_id":         ride.ID,
			"source":          ride.Source,
			"destination":     ride.Destination,
			"departure_time":  ride.DepartureTime,
			"available_seats": ride.AvailableSeats,
			"price_per_seat":  ride.PricePerSeat,
		},
	})
}

// NotifyRideCancelled announces a cancelled ride.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRideCancelled,
		RecipientID: ride.DriverID,
		Title:       "Ride Cancelled",
		Message:     fmt.Sprintf("Your ride from %s to %s was cancelled", ride.Source, ride.Destination),
		Data: map[string]any{
			"ride_id": ride.ID,
		},
	})
}

// NotifyRideCompleted announces a completed ride.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride *domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.DriverID,
		Title:       "Ride Completed",
		Message:     fmt.Sprintf("Your ride from %s to %s is marked as completed", ride.Source, ride.Destination),
		Data: map[string]any{
			"ride_id": ride.ID,
		},
	})
}

func (s *NotificationService) send(ctx context.Context, notification Notification) {
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now()

	s.log.Info("notification",
		logger.String("type", string(notification.Type)),
		logger.String("recipient_id", notification.RecipientID),
		logger.String("title", notification.Title),
	)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, s.exchange, routingKeys[notification.Type], notification); err != nil {
		s.log.Error("notification publish failed",
			logger.String("type", string(notification.Type)),
			logger.Error(err),
		)
	}
}
