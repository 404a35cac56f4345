package repository

import (
	"context"
	"fmt"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository interface {
	FindByID(ctx context.Context, id int64) (*model.ParticipationRequest, error)
	FindAllByRequesterID(ctx context.Context, requesterID int64) ([]*model.ParticipationRequest, error)
	FindAllByEventID(ctx context.Context, eventID int64) ([]*model.ParticipationRequest, error)
	// CountConfirmedByEventIDs 讀取端裝飾用的已確認數彙總
	CountConfirmedByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.ParticipationRequest, error)

	// Transaction methods：准入路徑必須在持有活動列鎖的交易中執行
	Create(ctx context.Context, tx pgx.Tx, request *model.ParticipationRequest) (*model.ParticipationRequest, error)
	ExistsByRequesterAndEvent(ctx context.Context, tx pgx.Tx, requesterID, eventID int64) (bool, error)
	CountConfirmed(ctx context.Context, tx pgx.Tx, eventID int64) (int64, error)
	FindByIDIn(ctx context.Context, tx pgx.Tx, ids []int64) ([]*model.ParticipationRequest, error)
	UpdateStatusByIDs(ctx context.Context, tx pgx.Tx, ids []int64, status model.RequestStatus) error
}

type RequestRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &RequestRepositoryImpl{
		pool: pool,
	}
}

const requestColumns = `id, created, event_id, requester_id, status`

func scanRequest(row pgx.Row) (*model.ParticipationRequest, error) {
	var request model.ParticipationRequest
	err := row.Scan(
		&request.ID,
		&request.Created,
		&request.EventID,
		&request.RequesterID,
		&request.Status,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func collectRequests(rows pgx.Rows) ([]*model.ParticipationRequest, error) {
	defer rows.Close()

	requests := make([]*model.ParticipationRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *RequestRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.ParticipationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	request, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *RequestRepositoryImpl) FindAllByRequesterID(ctx context.Context, requesterID int64) ([]*model.ParticipationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE requester_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, requesterID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *RequestRepositoryImpl) FindAllByEventID(ctx context.Context, eventID int64) ([]*model.ParticipationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE event_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *RequestRepositoryImpl) CountConfirmedByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	if len(eventIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT event_id, COUNT(*)
		FROM requests
		WHERE event_id = ANY($1) AND status = $2
		GROUP BY event_id
	`

	rows, err := r.pool.Query(ctx, query, eventIDs, model.RequestStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, count int64
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, err
		}
		counts[eventID] = count
	}
	return counts, rows.Err()
}

func (r *RequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.ParticipationRequest, error) {
	query := `
		UPDATE requests
		SET status = $1
		WHERE id = $2
		RETURNING ` + requestColumns

	request, err := scanRequest(r.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	return request, nil
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, request *model.ParticipationRequest) (*model.ParticipationRequest, error) {
	query := `
		INSERT INTO requests (created, event_id, requester_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		request.Created, request.EventID, request.RequesterID, request.Status,
	).Scan(&request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

func (r *RequestRepositoryImpl) ExistsByRequesterAndEvent(ctx context.Context, tx pgx.Tx, requesterID, eventID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE requester_id = $1 AND event_id = $2)`,
		requesterID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RequestRepositoryImpl) CountConfirmed(ctx context.Context, tx pgx.Tx, eventID int64) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`,
		eventID, model.RequestStatusConfirmed,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RequestRepositoryImpl) FindByIDIn(ctx context.Context, tx pgx.Tx, ids []int64) ([]*model.ParticipationRequest, error) {
	if len(ids) == 0 {
		return []*model.ParticipationRequest{}, nil
	}

	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *RequestRepositoryImpl) UpdateStatusByIDs(ctx context.Context, tx pgx.Tx, ids []int64, status model.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx,
		`UPDATE requests SET status = $1 WHERE id = ANY($2)`,
		status, ids,
	)
	if err != nil {
		return fmt.Errorf("failed to update request statuses: %w", err)
	}
	return nil
}
