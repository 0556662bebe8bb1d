package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-operations/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrTxContention marks a commit that lost to concurrent write pressure on
// the same hall (serialization failure or deadlock). It is transient and the
// only failure class callers should retry.
var ErrTxContention = errors.New("transaction contention")

// ErrHallGone marks a hall row that vanished between the service's lookup
// and the locking transaction.
var ErrHallGone = errors.New("hall not found")

// ScheduleTx runs the conflict check and the write that follows it as one
// atomic unit, serialized per hall. Two requests for different halls proceed
// fully in parallel; two requests for the same hall never both pass the
// conflict check before either commits.
type ScheduleTx interface {
	WithHallLock(ctx context.Context, hallID uuid.UUID, fn func(screenings ScreeningRepository, bookings BookingRepository) error) error
}

type scheduleTx struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleTx(db database.PgxIface, log *zap.Logger) ScheduleTx {
	return &scheduleTx{
		db:  db,
		log: log.With(zap.String("repository", "schedule_tx")),
	}
}

func (t *scheduleTx) WithHallLock(ctx context.Context, hallID uuid.UUID, fn func(screenings ScreeningRepository, bookings BookingRepository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schedule transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock on the hall serializes every schedule mutation for it while
	// leaving other halls untouched.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, hallID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return ErrHallGone
	}
	if err != nil {
		if isContention(err) {
			return ErrTxContention
		}
		t.log.Error("Failed to lock hall row",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return fmt.Errorf("lock hall %s: %w", hallID.String(), err)
	}

	if err := fn(NewScreeningRepository(tx, t.log), NewBookingRepository(tx, t.log)); err != nil {
		if isContention(err) {
			return ErrTxContention
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isContention(err) {
			return ErrTxContention
		}
		t.log.Error("Failed to commit schedule transaction",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return fmt.Errorf("commit schedule transaction for hall %s: %w", hallID.String(), err)
	}

	return nil
}

// isContention matches the SQLSTATEs Postgres raises under write-write
// pressure: serialization_failure and deadlock_detected.
func isContention(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
