package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/streadway/amqp"
)

// HistoryService turns product events into ProductHistory rows and serves
// them back per product.
type HistoryService struct {
	history  repositories.HistoryRepository
	products repositories.ProductRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(history repositories.HistoryRepository, products repositories.ProductRepository) *HistoryService {
	return &HistoryService{history: history, products: products}
}

// RecordEvent stores one history row per field change in event. Events
// without changes (creates and deletes) leave no rows.
func (s *HistoryService) RecordEvent(event models.ProductEvent) error {
	if len(event.Changes) == 0 {
		return nil
	}

	entries := make([]models.ProductHistory, 0, len(event.Changes))
	for _, c := range event.Changes {
		oldValue, newValue := c.OldValue, c.NewValue
		entries = append(entries, models.ProductHistory{
			ProductID:  event.ProductID,
			FieldName:  c.Field,
			OldValue:   &oldValue,
			NewValue:   &newValue,
			ChangeDate: event.OccurredAt,
		})
	}
	return s.history.Create(entries)
}

// HandleDelivery decodes a product event off the queue and records it.
// A returned error makes the consumer nack and requeue the message, so
// undecodable bodies are logged and dropped instead.
func (s *HistoryService) HandleDelivery(msg amqp.Delivery) error {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Dropping malformed product event (Tag: %d): %v", msg.DeliveryTag, err)
		return nil
	}
	if err := s.RecordEvent(event); err != nil {
		return fmt.Errorf("failed to record %s event %s: %w", event.Type, event.ID, err)
	}
	return nil
}

// PublishProductEvent records the event in-process. It lets the service act
// as the ProductService publisher when no broker is configured.
func (s *HistoryService) PublishProductEvent(event models.ProductEvent) error {
	return s.RecordEvent(event)
}

// GetProductHistory returns the change log of an existing product.
func (s *HistoryService) GetProductHistory(productID uint) ([]models.ProductHistory, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, notFoundError(MsgProductNotFound)
		}
		return nil, err
	}
	return s.history.GetByProductID(productID)
}
