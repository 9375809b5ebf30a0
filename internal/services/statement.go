package services

import (
	"context"
	"time"

	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/statement"
)

type StatementService interface {
	// Generate renders the statement for the current modules. Copies are
	// handed to every configured sink; sink failures are logged only.
	Generate(ctx context.Context) (name string, png []byte, err error)
}

type statementService struct {
	log      *logger.Logger
	calc     CalculatorService
	renderer *statement.Renderer
	sinks    []statement.Sink
	now      func() time.Time
}

func NewStatementService(baseLog *logger.Logger, calc CalculatorService, renderer *statement.Renderer, sinks ...statement.Sink) StatementService {
	return &statementService{
		log:      baseLog.With("service", "StatementService"),
		calc:     calc,
		renderer: renderer,
		sinks:    sinks,
		now:      time.Now,
	}
}

func (s *statementService) Generate(ctx context.Context) (string, []byte, error) {
	st, err := statement.FromState(s.calc.State(ctx), s.now())
	if err != nil {
		return "", nil, err
	}
	out, err := s.renderer.Render(st)
	if err != nil {
		return "", nil, err
	}
	name := st.FileName()
	for _, sink := range s.sinks {
		loc, err := sink.Put(ctx, name, out)
		if err != nil {
			s.log.Warn("statement sink failed (ignored)", "file", name, "error", err)
			continue
		}
		s.log.Info("statement stored", "file", name, "location", loc)
	}
	return name, out, nil
}
