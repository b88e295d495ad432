package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/EcoHunt_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, entry eventlog.Entry) error {
	query := `
		INSERT INTO events (event_type, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`

	payloadJSON, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayload, err)
	}

	var metadataJSON []byte
	if entry.Metadata != nil {
		if metadataJSON, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayload, err)
		}
	}

	_, err = r.db.Exec(ctx, query, entry.EventType, entry.UserID, payloadJSON, metadataJSON)
	return err
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM events
		WHERE 1=1`)

	args := []interface{}{}
	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		fmt.Fprintf(&queryBuilder, clause, len(args))
	}

	if filter.UserID != nil {
		addArg(" AND user_id = $%d", *filter.UserID)
	}
	if filter.EventType != nil {
		addArg(" AND event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		addArg(" AND created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		addArg(" AND created_at <= $%d", *filter.Until)
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		addArg(" LIMIT $%d", filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes events created before cutoff
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// scanEvents scans rows into Event structs
func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event

	for rows.Next() {
		var evt eventlog.Event
		var payloadJSON, metadataJSON []byte

		err := rows.Scan(
			&evt.ID,
			&evt.EventType,
			&evt.UserID,
			&payloadJSON,
			&metadataJSON,
			&evt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, err
			}
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
