package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yungbote/gradecalc/internal/grading"
	"github.com/yungbote/gradecalc/internal/platform/ctxutil"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
	"github.com/yungbote/gradecalc/internal/store"
)

type CalculatorService interface {
	State(ctx context.Context) state.State
	Apply(ctx context.Context, a state.Action) (state.State, error)
	Semester(ctx context.Context) (grading.SemesterResult, error)
	Annual(ctx context.Context) (grading.AnnualResult, error)
	Schemes(ctx context.Context) []grading.Scheme
	ClearAllData(ctx context.Context) (state.State, error)
}

type calculatorService struct {
	log   *logger.Logger
	store store.Store

	mu  sync.Mutex
	cur state.State
}

// NewCalculatorService loads the saved state from st and serves it as the one
// local profile.
func NewCalculatorService(ctx context.Context, st store.Store, baseLog *logger.Logger) (CalculatorService, error) {
	if st == nil {
		return nil, errors.New("store required")
	}
	log := baseLog.With("service", "CalculatorService")
	cur, found, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	log.Info("calculator state loaded",
		"restored", found,
		"save_enabled", cur.SaveEnabled,
		"modules", len(cur.Modules),
		"scheme_id", cur.SchemeID,
	)
	return &calculatorService{log: log, store: st, cur: cur}, nil
}

func (s *calculatorService) State(ctx context.Context) state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Clone()
}

// Apply reduces the current state with a and persists the result. The new
// snapshot only becomes current once it is saved.
func (s *calculatorService) Apply(ctx context.Context, a state.Action) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With(ctxutil.LogFields(ctx)...).With("action", a.Name())
	next, err := state.Reduce(s.cur, a)
	if err != nil {
		log.Debug("action rejected", "error", err, "message_key", state.MessageKey(err))
		return s.cur.Clone(), err
	}
	if err := s.store.Save(ctx, next); err != nil {
		log.Error("persist state failed", "error", err)
		return s.cur.Clone(), fmt.Errorf("persist state: %w", err)
	}
	s.cur = next
	log.Debug("action applied", "modules", len(next.Modules), "scheme_id", next.SchemeID)
	return next.Clone(), nil
}

func (s *calculatorService) Semester(ctx context.Context) (grading.SemesterResult, error) {
	return s.State(ctx).Semester()
}

func (s *calculatorService) Annual(ctx context.Context) (grading.AnnualResult, error) {
	return s.State(ctx).Annual()
}

func (s *calculatorService) Schemes(ctx context.Context) []grading.Scheme {
	return s.State(ctx).Schemes()
}

// ClearAllData removes both stored records and returns to the defaults.
func (s *calculatorService) ClearAllData(ctx context.Context) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error("clear stored state failed", "error", err)
		return s.cur.Clone(), fmt.Errorf("clear state: %w", err)
	}
	s.cur = state.Default()
	s.log.Info("all calculator data cleared")
	return s.cur.Clone(), nil
}
