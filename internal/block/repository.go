package block

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/resortwale/booking-backend/internal/db"
)

const (
	adminBlockTable = "public.admin_blocked_dates"
	ownerBlockTable = "public.owner_blocked_dates"
)

// ProbeCapabilities checks once, at startup, which block tables exist.
// This replaces swallowing per-query errors for deployments without them.
func ProbeCapabilities(ctx context.Context, pool *pgxpool.Pool) (Capabilities, error) {
	var caps Capabilities
	var err error

	caps.AdminBlocks, err = db.TableExists(ctx, pool, adminBlockTable)
	if err != nil {
		return Capabilities{}, err
	}
	caps.OwnerBlocks, err = db.TableExists(ctx, pool, ownerBlockTable)
	if err != nil {
		return Capabilities{}, err
	}

	if !caps.AdminBlocks {
		log.Printf("admin block table absent, admin blocks disabled")
	}
	if !caps.OwnerBlocks {
		log.Printf("owner block table absent, owner blocks disabled")
	}

	return caps, nil
}

type Repository interface {
	// IsDateBlocked reports whether the resort is blocked for check-in on the
	// given calendar date by the given source. A source whose table is absent
	// always reports false.
	IsDateBlocked(ctx context.Context, resortID int64, date time.Time, source Source) (bool, error)

	Create(ctx context.Context, b *Block) error
	Delete(ctx context.Context, source Source, id int64) error
	ListByResort(ctx context.Context, resortID int64, source Source) ([]*Block, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	caps Capabilities
}

func NewPgxRepository(pool *pgxpool.Pool, caps Capabilities) Repository {
	return &pgxRepository{pool: pool, caps: caps}
}

func tableFor(source Source) (string, error) {
	switch source {
	case SourceAdmin:
		return adminBlockTable, nil
	case SourceOwner:
		return ownerBlockTable, nil
	default:
		return "", ErrUnknownSource
	}
}

func (r *pgxRepository) IsDateBlocked(ctx context.Context, resortID int64, date time.Time, source Source) (bool, error) {
	table, err := tableFor(source)
	if err != nil {
		return false, err
	}
	if !r.caps.Has(source) {
		return false, nil
	}

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE resort_id = $1 AND block_date = $2::date)`,
		table,
	)

	var blocked bool
	if err := r.pool.QueryRow(ctx, query, resortID, date.Format("2006-01-02")).Scan(&blocked); err != nil {
		return false, fmt.Errorf("check %s block failed: %w", source, err)
	}
	return blocked, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Block) error {
	table, err := tableFor(b.Source)
	if err != nil {
		return err
	}
	if !r.caps.Has(b.Source) {
		return ErrSourceUnavailable
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (resort_id, block_date)
		VALUES ($1, $2::date)
		ON CONFLICT (resort_id, block_date) DO NOTHING
		RETURNING id, created_at
	`, table)

	err = r.pool.QueryRow(ctx, query, b.ResortID, b.BlockDate.Format("2006-01-02")).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		// ON CONFLICT DO NOTHING yields no row when the date is already blocked.
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAlreadyBlocked
		}
		return fmt.Errorf("create %s block failed: %w", b.Source, err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, source Source, id int64) error {
	table, err := tableFor(source)
	if err != nil {
		return err
	}
	if !r.caps.Has(source) {
		return ErrSourceUnavailable
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s block failed: %w", source, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByResort(ctx context.Context, resortID int64, source Source) ([]*Block, error) {
	table, err := tableFor(source)
	if err != nil {
		return nil, err
	}
	if !r.caps.Has(source) {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, resort_id, block_date, created_at
		FROM %s
		WHERE resort_id = $1
		ORDER BY block_date
	`, table)

	rows, err := r.pool.Query(ctx, query, resortID)
	if err != nil {
		return nil, fmt.Errorf("list %s blocks failed: %w", source, err)
	}
	defer rows.Close()

	var blocks []*Block
	for rows.Next() {
		b := &Block{Source: source}
		if err := rows.Scan(&b.ID, &b.ResortID, &b.BlockDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan block failed: %w", err)
		}
		blocks = append(blocks, b)
	}

	return blocks, nil
}
