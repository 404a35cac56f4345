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

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	// FindByIDForUpdate 在交易中鎖定活動列，作為同一活動所有准入決策的序列化點
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Event, error)
	FindByInitiatorID(ctx context.Context, initiatorID int64, from, size int) ([]*model.Event, error)
	FindByIDIn(ctx context.Context, ids []int64) ([]*model.Event, error)
	AdminSearch(ctx context.Context, filter model.AdminEventFilter) ([]*model.Event, error)
	PublicSearch(ctx context.Context, filter model.PublicEventFilter) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `
	e.id, e.annotation, e.category_id, e.created_on, e.description, e.event_date,
	e.initiator_id, e.location_lat, e.location_lon, e.is_paid, e.participant_limit,
	e.published_on, e.request_moderation, e.state, e.title, c.name, u.name`

const eventFrom = `
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.initiator_id`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Annotation,
		&event.CategoryID,
		&event.CreatedOn,
		&event.Description,
		&event.EventDate,
		&event.InitiatorID,
		&event.Location.Lat,
		&event.Location.Lon,
		&event.Paid,
		&event.ParticipantLimit,
		&event.PublishedOn,
		&event.RequestModeration,
		&event.State,
		&event.Title,
		&event.CategoryName,
		&event.InitiatorName,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) collectEvents(rows pgx.Rows) ([]*model.Event, error) {
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (
			annotation, category_id, created_on, description, event_date, initiator_id,
			location_lat, location_lon, is_paid, participant_limit, published_on,
			request_moderation, state, title
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		event.Annotation, event.CategoryID, event.CreatedOn, event.Description,
		event.EventDate, event.InitiatorID, event.Location.Lat, event.Location.Lon,
		event.Paid, event.ParticipantLimit, event.PublishedOn,
		event.RequestModeration, event.State, event.Title,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.id = $1
		FOR UPDATE OF e`

	event, err := scanEvent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindByInitiatorID(ctx context.Context, initiatorID int64, from, size int) ([]*model.Event, error) {
	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.initiator_id = $1
		ORDER BY e.id ASC
		OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, initiatorID, from, size)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(rows)
}

func (r *EventRepositoryImpl) FindByIDIn(ctx context.Context, ids []int64) ([]*model.Event, error) {
	if len(ids) == 0 {
		return []*model.Event{}, nil
	}

	query := `SELECT` + eventColumns + eventFrom + `
		WHERE e.id = ANY($1)
		ORDER BY e.id ASC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(rows)
}

func (r *EventRepositoryImpl) AdminSearch(ctx context.Context, filter model.AdminEventFilter) ([]*model.Event, error) {
	conds := []string{}
	args := []interface{}{}
	argPos := 1

	if len(filter.InitiatorIDs) > 0 {
		conds = append(conds, fmt.Sprintf("e.initiator_id = ANY($%d)", argPos))
		args = append(args, filter.InitiatorIDs)
		argPos++
	}
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, s := range filter.States {
			states = append(states, string(s))
		}
		conds = append(conds, fmt.Sprintf("e.state = ANY($%d)", argPos))
		args = append(args, states)
		argPos++
	}
	if len(filter.CategoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf("e.category_id = ANY($%d)", argPos))
		args = append(args, filter.CategoryIDs)
		argPos++
	}
	if filter.RangeStart != nil {
		conds = append(conds, fmt.Sprintf("e.event_date > $%d", argPos))
		args = append(args, *filter.RangeStart)
		argPos++
	}
	if filter.RangeEnd != nil {
		conds = append(conds, fmt.Sprintf("e.event_date < $%d", argPos))
		args = append(args, *filter.RangeEnd)
		argPos++
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, filter.From, filter.Size)
	query := fmt.Sprintf(`SELECT%s%s
		%s
		ORDER BY e.id ASC
		OFFSET $%d LIMIT $%d`, eventColumns, eventFrom, where, argPos, argPos+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(rows)
}

func (r *EventRepositoryImpl) PublicSearch(ctx context.Context, filter model.PublicEventFilter) ([]*model.Event, error) {
	conds := []string{"e.state = 'PUBLISHED'"}
	args := []interface{}{}
	argPos := 1

	if filter.Text != nil && *filter.Text != "" {
		conds = append(conds, fmt.Sprintf(
			"(lower(e.annotation) LIKE '%%' || lower($%d) || '%%' OR lower(e.description) LIKE '%%' || lower($%d) || '%%')",
			argPos, argPos))
		args = append(args, *filter.Text)
		argPos++
	}
	if len(filter.CategoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf("e.category_id = ANY($%d)", argPos))
		args = append(args, filter.CategoryIDs)
		argPos++
	}
	if filter.Paid != nil {
		conds = append(conds, fmt.Sprintf("e.is_paid = $%d", argPos))
		args = append(args, *filter.Paid)
		argPos++
	}
	if filter.RangeStart != nil {
		conds = append(conds, fmt.Sprintf("e.event_date > $%d", argPos))
		args = append(args, *filter.RangeStart)
		argPos++
	}
	if filter.RangeEnd != nil {
		conds = append(conds, fmt.Sprintf("e.event_date < $%d", argPos))
		args = append(args, *filter.RangeEnd)
		argPos++
	}
	if filter.OnlyAvailable {
		// 額滿(已確認數達到非零上限)的活動不回傳
		conds = append(conds, `(e.participant_limit = 0 OR e.participant_limit > (
			SELECT COUNT(*) FROM requests r
			WHERE r.event_id = e.id AND r.status = 'CONFIRMED'))`)
	}
	if filter.SubscriberID != 0 {
		conds = append(conds, fmt.Sprintf(`e.initiator_id IN (
			SELECT s.initiator_id FROM subscriptions s
			WHERE s.subscriber_id = $%d AND s.status = 'CONFIRMED')`, argPos))
		args = append(args, filter.SubscriberID)
		argPos++
	}

	// VIEWS 排序需要統計服務的資料，由 service 層在裝飾後處理
	orderBy := "e.id ASC"
	if filter.Sort == model.EventSortByEventDate {
		orderBy = "e.event_date ASC"
	}

	// Size <= 0 表示不分頁，VIEWS 全域排序需要完整結果集
	page := ""
	if filter.Size > 0 {
		page = fmt.Sprintf(" OFFSET $%d LIMIT $%d", argPos, argPos+1)
		args = append(args, filter.From, filter.Size)
	}
	query := fmt.Sprintf(`SELECT%s%s
		WHERE %s
		ORDER BY %s%s`, eventColumns, eventFrom, strings.Join(conds, " AND "), orderBy, page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collectEvents(rows)
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		UPDATE events
		SET annotation = $1, category_id = $2, description = $3, event_date = $4,
		    location_lat = $5, location_lon = $6, is_paid = $7, participant_limit = $8,
		    published_on = $9, request_moderation = $10, state = $11, title = $12
		WHERE id = $13
	`

	result, err := r.pool.Exec(ctx, query,
		event.Annotation, event.CategoryID, event.Description, event.EventDate,
		event.Location.Lat, event.Location.Lon, event.Paid, event.ParticipantLimit,
		event.PublishedOn, event.RequestModeration, event.State, event.Title,
		event.ID,
	)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (r *EventRepositoryImpl) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`, categoryID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
