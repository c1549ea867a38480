package resort

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, res *Resort) error
	GetByID(ctx context.Context, id int64) (*Resort, error)

	// GetWithPricing loads the resort together with its day-type price rules
	// in a single read, so availability evaluation sees one consistent snapshot.
	GetWithPricing(ctx context.Context, id int64) (*Resort, error)

	List(ctx context.Context, filter Filter) ([]*Resort, int, error)
	Update(ctx context.Context, res *Resort) error
	Delete(ctx context.Context, id int64) error

	UpsertPriceRule(ctx context.Context, rule *PriceRule) error
	DeletePriceRule(ctx context.Context, resortID int64, dayType string) error
	ListPriceRules(ctx context.Context, resortID int64) ([]PriceRule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const resortColumns = `
	id, name, location, description, price, available,
	peak_price, off_peak_price, peak_season_start, peak_season_end,
	created_at, updated_at
`

func scanResort(row pgx.Row, res *Resort) error {
	return row.Scan(
		&res.ID, &res.Name, &res.Location, &res.Description, &res.Price, &res.Available,
		&res.PeakPrice, &res.OffPeakPrice, &res.PeakSeasonStart, &res.PeakSeasonEnd,
		&res.CreatedAt, &res.UpdatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, res *Resort) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.resorts").
		Columns(
			"name", "location", "description", "price", "available",
			"peak_price", "off_peak_price", "peak_season_start", "peak_season_end",
		).
		Values(
			res.Name, res.Location, res.Description, res.Price, res.Available,
			res.PeakPrice, res.OffPeakPrice, res.PeakSeasonStart, res.PeakSeasonEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create resort query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Resort, error) {
	query := `SELECT ` + resortColumns + ` FROM public.resorts WHERE id = $1`

	var res Resort
	if err := scanResort(r.pool.QueryRow(ctx, query, id), &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resort failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) GetWithPricing(ctx context.Context, id int64) (*Resort, error) {
	const query = `
		SELECT
			r.id, r.name, r.location, r.description, r.price, r.available,
			r.peak_price, r.off_peak_price, r.peak_season_start, r.peak_season_end,
			r.created_at, r.updated_at,
			COALESCE(
				(
					SELECT json_agg(json_build_object(
						'id', dp.id, 'resort_id', dp.resort_id,
						'day_type', dp.day_type, 'price', dp.price
					))
					FROM public.dynamic_price_rules dp
					WHERE dp.resort_id = r.id
				),
				'[]'::json
			) AS price_rules
		FROM public.resorts r
		WHERE r.id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)

	var res Resort
	var rulesJSON []byte

	if err := row.Scan(
		&res.ID, &res.Name, &res.Location, &res.Description, &res.Price, &res.Available,
		&res.PeakPrice, &res.OffPeakPrice, &res.PeakSeasonStart, &res.PeakSeasonEnd,
		&res.CreatedAt, &res.UpdatedAt,
		&rulesJSON,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get resort with pricing failed: %w", err)
	}

	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &res.PriceRules); err != nil {
			log.Printf("warning: failed to unmarshal price rules for resort %d: %v", res.ID, err)
		}
	}

	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Resort, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "location", "description", "price", "available",
		"peak_price", "off_peak_price", "peak_season_start", "peak_season_end",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.resorts")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"location": "%" + filter.Keyword + "%"},
		})
	}
	if filter.Available != nil {
		query = query.Where(squirrel.Eq{"available": *filter.Available})
	}

	// Sorting
	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list resorts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list resorts failed: %w", err)
	}
	defer rows.Close()

	var result []*Resort
	var total int

	for rows.Next() {
		var res Resort
		if err := rows.Scan(
			&res.ID, &res.Name, &res.Location, &res.Description, &res.Price, &res.Available,
			&res.PeakPrice, &res.OffPeakPrice, &res.PeakSeasonStart, &res.PeakSeasonEnd,
			&res.CreatedAt, &res.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan resort failed: %w", err)
		}
		result = append(result, &res)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Resort) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.resorts").
		Set("name", res.Name).
		Set("location", res.Location).
		Set("description", res.Description).
		Set("price", res.Price).
		Set("available", res.Available).
		Set("peak_price", res.PeakPrice).
		Set("off_peak_price", res.OffPeakPrice).
		Set("peak_season_start", res.PeakSeasonStart).
		Set("peak_season_end", res.PeakSeasonEnd).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update resort query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update resort failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM public.resorts WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete resort failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpsertPriceRule(ctx context.Context, rule *PriceRule) error {
	// One rule per (resort, day type); repeated sets overwrite the price.
	const query = `
		INSERT INTO public.dynamic_price_rules (resort_id, day_type, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (resort_id, day_type) DO UPDATE SET price = EXCLUDED.price
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query, rule.ResortID, rule.DayType, rule.Price).
		Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("upsert price rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) DeletePriceRule(ctx context.Context, resortID int64, dayType string) error {
	const query = `DELETE FROM public.dynamic_price_rules WHERE resort_id = $1 AND day_type = $2`
	ct, err := r.pool.Exec(ctx, query, resortID, dayType)
	if err != nil {
		return fmt.Errorf("delete price rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *pgxRepository) ListPriceRules(ctx context.Context, resortID int64) ([]PriceRule, error) {
	const query = `
		SELECT id, resort_id, day_type, price
		FROM public.dynamic_price_rules
		WHERE resort_id = $1
		ORDER BY day_type
	`
	rows, err := r.pool.Query(ctx, query, resortID)
	if err != nil {
		return nil, fmt.Errorf("list price rules failed: %w", err)
	}
	defer rows.Close()

	var rules []PriceRule
	for rows.Next() {
		var rule PriceRule
		if err := rows.Scan(&rule.ID, &rule.ResortID, &rule.DayType, &rule.Price); err != nil {
			return nil, fmt.Errorf("scan price rule failed: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}
