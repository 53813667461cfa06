package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"companion-llm/internal/domain"
)

// MessageRepository es append-only por relacion.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	// ListRecent devuelve los ultimos limit mensajes en orden cronologico.
	ListRecent(ctx context.Context, relationshipID string, limit int) ([]domain.Message, error)
	ListImportant(ctx context.Context, relationshipID string, limit int) ([]domain.Message, error)
	CountByRelationship(ctx context.Context, relationshipID string) (int, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, relationship_id, sender_id, sender_type, content, emotional_tone, sentiment, metadata, is_important, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	metadata, err := json.Marshal(message.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		message.ID,
		message.RelationshipID,
		message.SenderID,
		message.SenderType,
		message.Content,
		string(message.EmotionalTone),
		message.Sentiment,
		metadata,
		message.IsImportant,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListRecent(ctx context.Context, relationshipID string, limit int) ([]domain.Message, error) {
	const query = `
		SELECT id, relationship_id, sender_id, sender_type, content, emotional_tone, sentiment, metadata, is_important, created_at
		FROM (
			SELECT * FROM messages
			WHERE relationship_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, relationshipID, limit)
}

func (r *PgMessageRepository) ListImportant(ctx context.Context, relationshipID string, limit int) ([]domain.Message, error) {
	const query = `
		SELECT id, relationship_id, sender_id, sender_type, content, emotional_tone, sentiment, metadata, is_important, created_at
		FROM (
			SELECT * FROM messages
			WHERE relationship_id = $1 AND is_important
			ORDER BY created_at DESC
			LIMIT $2
		) important
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, relationshipID, limit)
}

func (r *PgMessageRepository) CountByRelationship(ctx context.Context, relationshipID string) (int, error) {
	const query = `SELECT COUNT(*) FROM messages WHERE relationship_id = $1`
	var n int
	if err := r.pool.QueryRow(ctx, query, relationshipID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PgMessageRepository) list(ctx context.Context, query, relationshipID string, limit int) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, relationshipID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var tone string
		var metadata []byte

		err = rows.Scan(
			&msg.ID,
			&msg.RelationshipID,
			&msg.SenderID,
			&msg.SenderType,
			&msg.Content,
			&tone,
			&msg.Sentiment,
			&metadata,
			&msg.IsImportant,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		msg.EmotionalTone = domain.Tone(tone)
		if len(metadata) > 0 {
			// Metadata corrupta no debe tumbar el historial.
			_ = json.Unmarshal(metadata, &msg.Metadata)
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
