package repository

import (
	"context"
	"fmt"
	"strings"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompilationRepository interface {
	Create(ctx context.Context, compilation *model.Compilation, eventIDs []int64) (*model.Compilation, error)
	FindByID(ctx context.Context, id int64) (*model.Compilation, error)
	List(ctx context.Context, pinned *bool, from, size int) ([]*model.Compilation, error)
	Update(ctx context.Context, id int64, params model.UpdateCompilationParams) (*model.Compilation, error)
	Delete(ctx context.Context, id int64) error
}

type CompilationRepositoryImpl struct {
	pool      *pgxpool.Pool
	eventRepo EventRepository
}

func NewCompilationRepository(pool *pgxpool.Pool, eventRepo EventRepository) CompilationRepository {
	return &CompilationRepositoryImpl{
		pool:      pool,
		eventRepo: eventRepo,
	}
}

func (r *CompilationRepositoryImpl) Create(ctx context.Context, compilation *model.Compilation, eventIDs []int64) (*model.Compilation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id`,
		compilation.Title, compilation.Pinned,
	).Scan(&compilation.ID)
	if err != nil {
		return nil, err
	}

	if err := r.replaceMembers(ctx, tx, compilation.ID, eventIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, compilation.ID)
}

func (r *CompilationRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Compilation, error) {
	var compilation model.Compilation
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, pinned FROM compilations WHERE id = $1`, id,
	).Scan(&compilation.ID, &compilation.Title, &compilation.Pinned)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCompilationNotFound
		}
		return nil, err
	}

	events, err := r.memberEvents(ctx, compilation.ID)
	if err != nil {
		return nil, err
	}
	compilation.Events = events

	return &compilation, nil
}

func (r *CompilationRepositoryImpl) List(ctx context.Context, pinned *bool, from, size int) ([]*model.Compilation, error) {
	query := `
		SELECT id, title, pinned
		FROM compilations
		WHERE ($1::boolean IS NULL OR pinned = $1)
		ORDER BY id ASC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, pinned, from, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	compilations := make([]*model.Compilation, 0)
	for rows.Next() {
		var compilation model.Compilation
		if err := rows.Scan(&compilation.ID, &compilation.Title, &compilation.Pinned); err != nil {
			return nil, err
		}
		compilations = append(compilations, &compilation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, compilation := range compilations {
		events, err := r.memberEvents(ctx, compilation.ID)
		if err != nil {
			return nil, err
		}
		compilation.Events = events
	}
	return compilations, nil
}

func (r *CompilationRepositoryImpl) Update(ctx context.Context, id int64, params model.UpdateCompilationParams) (*model.Compilation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *params.Title)
		argPos++
	}
	if params.Pinned != nil {
		sets = append(sets, fmt.Sprintf("pinned = $%d", argPos))
		args = append(args, *params.Pinned)
		argPos++
	}

	if len(sets) > 0 {
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE compilations SET %s WHERE id = $%d`,
			strings.Join(sets, ", "), argPos)
		result, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		if result.RowsAffected() == 0 {
			return nil, apperrors.ErrCompilationNotFound
		}
	}

	if params.EventIDs != nil {
		if err := r.replaceMembers(ctx, tx, id, *params.EventIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *CompilationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCompilationNotFound
	}
	return nil
}

func (r *CompilationRepositoryImpl) replaceMembers(ctx context.Context, tx pgx.Tx, compilationID int64, eventIDs []int64) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM compilation_events WHERE compilation_id = $1`, compilationID); err != nil {
		return err
	}
	for _, eventID := range eventIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2)`,
			compilationID, eventID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CompilationRepositoryImpl) memberEvents(ctx context.Context, compilationID int64) ([]*model.Event, error) {
	var ids []int64
	rows, err := r.pool.Query(ctx,
		`SELECT event_id FROM compilation_events WHERE compilation_id = $1 ORDER BY event_id ASC`,
		compilationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.eventRepo.FindByIDIn(ctx, ids)
}
