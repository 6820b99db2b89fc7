package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/datatypes"
)

// NotificationConsumer turns reservation and review events into inbox
// rows for the affected host.
type NotificationConsumer struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationConsumer(notificationRepo repository.NotificationRepository) *NotificationConsumer {
	return &NotificationConsumer{notificationRepo: notificationRepo}
}

// Start listens for deliveries until the channel closes.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var event dto.ReservationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[NotificationConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}
	if event.HostID == 0 {
		// Nothing to notify; drop quietly.
		msg.Ack(false)
		return
	}

	notification := models.Notification{
		UserID:  event.HostID,
		Kind:    msg.RoutingKey,
		Payload: datatypes.JSON(msg.Body),
	}
	if err := nc.notificationRepo.Create(context.Background(), &notification); err != nil {
		log.Printf("[NotificationConsumer] failed to store notification: %v", err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[NotificationConsumer] stored %s for user %d", msg.RoutingKey, event.HostID)
	msg.Ack(false)
}
