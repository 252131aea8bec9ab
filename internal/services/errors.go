package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"vapor/internal/events"
)

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrConflict           = errors.New("conflict")            // 409
)

const publishTimeout = 5 * time.Second

// publish sends a domain event without failing the caller: the write that
// produced the event has already been committed.
func publish(publisher events.Publisher, routingKey string, payload any) {
	if publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s.", routingKey)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := publisher.Publish(ctx, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event", routingKey)
}
