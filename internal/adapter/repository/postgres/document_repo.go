package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/domain"
)

// DocumentRepository implements document metadata persistence
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create inserts a new document record
func (r *DocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	query := `
		INSERT INTO documents (id, trip_id, activity_id, name, file_path, file_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		document.ID,
		document.TripID,
		document.ActivityID,
		document.Name,
		document.FilePath,
		document.FileType,
		document.UploadedBy,
		document.CreatedAt,
	)

	return err
}

// ListByTrip retrieves a trip's documents newest-first, optionally
// filtered to one activity
func (r *DocumentRepository) ListByTrip(ctx context.Context, tripID string, activityID *string) ([]*domain.Document, error) {
	query := `
		SELECT id, trip_id, activity_id, name, file_path, file_type, uploaded_by, created_at
		FROM documents
		WHERE trip_id = $1
		  AND ($2::text IS NULL OR activity_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, tripID, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*domain.Document
	for rows.Next() {
		var document domain.Document
		if err := rows.Scan(
			&document.ID,
			&document.TripID,
			&document.ActivityID,
			&document.Name,
			&document.FilePath,
			&document.FileType,
			&document.UploadedBy,
			&document.CreatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &document)
	}

	return documents, rows.Err()
}
