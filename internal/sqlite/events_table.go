// This file implements the events table accessor for the SQLite backend:
// the append-only stream of committed state changes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/heirloom/pkg/types"
)

// Compile-time interface check: eventsTable must implement Table.
var _ types.Table = (*eventsTable)(nil)

type eventsTable struct {
	backend *Backend
}

// Get retrieves an event by ID.
func (et *eventsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := et.backend.db.QueryRow(
		"SELECT event_id, kind, owner, actor, payload, created_at FROM events WHERE event_id = ?",
		id,
	)
	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	return event, nil
}

// Set appends an event. An empty id generates a UUID v7; events are
// never updated once written.
func (et *eventsTable) Set(id string, data any) (string, error) {
	event, ok := data.(*types.Event)
	if !ok {
		return "", types.ErrInvalidData
	}
	if !types.IsValidEventKind(event.Kind) {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = generateUUID()
		event.EventID = id
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	payload := event.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}

	createdStr := event.CreatedAt.UTC().Format(time.RFC3339Nano)
	_, err = et.backend.db.Exec(
		"INSERT INTO events (event_id, kind, owner, actor, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, event.Kind, event.Owner, event.Actor, string(payloadJSON), createdStr,
	)
	if err != nil {
		return "", fmt.Errorf("persisting event: %w", err)
	}
	return id, nil
}

// Delete removes an event row. Only exercised by tests; the stream is
// append-only from the engine's point of view.
func (et *eventsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := et.backend.db.Exec("DELETE FROM events WHERE event_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all events matching the filter, oldest first. Supported
// filter keys: "owner", "kind", "actor".
func (et *eventsTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT event_id, kind, owner, actor, payload, created_at FROM events"
	where, args := buildWhere(filter, "owner", "kind", "actor")
	query += where + " ORDER BY created_at, event_id"

	rows, err := et.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("fetching events: %w", err)
		}
		results = append(results, event)
	}
	return results, rows.Err()
}

func scanEvent(s rowScanner) (*types.Event, error) {
	var event types.Event
	var payloadJSON, createdStr string

	if err := s.Scan(&event.EventID, &event.Kind, &event.Owner, &event.Actor, &payloadJSON, &createdStr); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payloadJSON), &event.Payload); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	var err error
	if event.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &event, nil
}
