// Package factory turns validated drafts into ledger mutations against the
// state store. Every method is one user action: it either commits completely
// or leaves the state as it was.
package factory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/store"
)

const dateLayout = "2006-01-02"

// Service is the controller for every factory record.
type Service struct {
	store    *store.Store
	ledger   *ledger.Ledger
	writeOff bool
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock used for default record dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how record ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithCustomerWriteOff makes customer deletion drop the customer's records
// without restoring the inventory they moved.
func WithCustomerWriteOff(writeOff bool) Option {
	return func(s *Service) { s.writeOff = writeOff }
}

// NewService wires a new factory service instance.
func NewService(st *store.Store, l *ledger.Ledger, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  st,
		ledger: l,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

func (s *Service) dateOr(value string) string {
	if value == "" {
		return s.today()
	}
	return value
}

// commit runs one ledger mutation through the store and logs the outcome.
func (s *Service) commit(ctx context.Context, op, id string, fn func(st *models.State) (ledger.Result, error)) ([]ledger.Clamp, error) {
	var res ledger.Result
	err := s.store.Update(ctx, func(st *models.State) error {
		r, err := fn(st)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		s.logger.Warn("mutation rejected", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("mutation committed",
		zap.String("op", op),
		zap.String("id", id),
		zap.Int("clamps", len(res.Clamps)),
	)
	return res.Clamps, nil
}

// change is commit for mutations that never touch counters.
func (s *Service) change(ctx context.Context, op, id string, fn func(st *models.State) error) error {
	_, err := s.commit(ctx, op, id, func(st *models.State) (ledger.Result, error) {
		return ledger.Result{}, fn(st)
	})
	return err
}

// Snapshot exposes a private copy of the state for reporting.
func (s *Service) Snapshot() *models.State {
	return s.store.Snapshot()
}
