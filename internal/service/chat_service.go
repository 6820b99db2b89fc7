package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Team-FBI/WPS/internal/dto"
	"github.com/Team-FBI/WPS/internal/models"
	"github.com/Team-FBI/WPS/internal/repository"
)

var (
	ErrNotParticipant = errors.New("only the reservation's guest or host may use this chat")
	ErrEmptyMessage   = errors.New("message text is empty")
)

type ChatService interface {
	PostMessage(ctx context.Context, reservationID, authorID uint, text string) (*models.Message, error)
	ListMessages(ctx context.Context, reservationID, requesterID uint, limit, offset int) ([]models.Message, error)
}

type chatService struct {
	messageRepo     repository.MessageRepository
	reservationRepo repository.ReservationRepository
	publisher       EventPublisher
}

func NewChatService(messageRepo repository.MessageRepository, reservationRepo repository.ReservationRepository, publisher EventPublisher) ChatService {
	return &chatService{
		messageRepo:     messageRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
	}
}

// PostMessage persists a chat line and fans it out on the broker. The
// broker leg is best-effort: history is served from the table, delivery
// has no ordering or at-least-once guarantee.
func (s *chatService) PostMessage(ctx context.Context, reservationID, authorID uint, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	isHost, err := s.participant(ctx, reservationID, authorID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ReservationID: reservationID,
		AuthorID:      authorID,
		IsHost:        isHost,
		Text:          text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		key := fmt.Sprintf("chat.reservation.%d", reservationID)
		err := s.publisher.Publish(key, dto.ChatEvent{
			MessageID:     message.ID,
			ReservationID: reservationID,
			AuthorID:      authorID,
			IsHost:        isHost,
			Text:          text,
			SentAt:        message.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("[ChatService] fan-out for reservation %d failed: %v", reservationID, err)
		}
	}

	return message, nil
}

func (s *chatService) ListMessages(ctx context.Context, reservationID, requesterID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.participant(ctx, reservationID, requesterID); err != nil {
		return nil, err
	}
	return s.messageRepo.FindByReservation(ctx, reservationID, limit, offset)
}

// participant reports whether userID may use the reservation's chat and
// whether they are the host side of it.
func (s *chatService) participant(ctx context.Context, reservationID, userID uint) (bool, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return false, ErrReservationNotFound
	}
	if reservation.UserID == userID {
		return false, nil
	}
	if reservation.Room != nil && reservation.Room.HostID == userID {
		return true, nil
	}
	return false, ErrNotParticipant
}
