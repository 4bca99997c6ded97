package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is one pending row of the order_events table. The publisher
// polls unprocessed rows and forwards them to the broker.
type OutboxEvent struct {
	ID        int64
	OrderID   uuid.UUID
	EventType string
	Payload   []byte
	Processed bool
	CreatedAt time.Time
}

func (r *Repository) InsertOrderEvent(ctx context.Context, orderID uuid.UUID, eventType string, payload []byte) error {
	query := `INSERT INTO order_events (order_id, event_type, payload, processed, created_at)
	          VALUES ($1, $2, $3, FALSE, NOW())`

	if _, err := r.db.ExecContext(ctx, query, orderID, eventType, payload); err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, order_id, event_type, payload, processed, created_at
	          FROM order_events WHERE NOT processed ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.EventType, &e.Payload, &e.Processed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE order_events SET processed = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}
