package app

import (
	"context"
	"fmt"

	"github.com/yungbote/gradecalc/internal/config"
	"github.com/yungbote/gradecalc/internal/feedback"
	"github.com/yungbote/gradecalc/internal/i18n"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/services"
	"github.com/yungbote/gradecalc/internal/statement"
	"github.com/yungbote/gradecalc/internal/store"
)

type Services struct {
	Catalog    *i18n.Catalog
	Calculator services.CalculatorService
	Statement  services.StatementService
	Feedback   services.FeedbackService
}

// wireServices builds the services. The returned func releases the sinks
// that hold clients.
func wireServices(ctx context.Context, log *logger.Logger, cfg *config.Config, st store.Store) (Services, func() error, error) {
	log.Info("Wiring services...")
	noClose := func() error { return nil }

	catalog, err := i18n.Default()
	if err != nil {
		return Services{}, noClose, fmt.Errorf("load translations: %w", err)
	}

	calc, err := services.NewCalculatorService(ctx, st, log)
	if err != nil {
		return Services{}, noClose, err
	}

	renderer, err := statement.NewRenderer(catalog, statement.Options{
		FontPath: cfg.Statement.FontPath,
		CacheTTL: cfg.Statement.CacheTTL.Duration,
		Log:      log,
	})
	if err != nil {
		return Services{}, noClose, err
	}

	var sinks []statement.Sink
	closeFn := noClose
	if cfg.Statement.OutputDir != "" {
		sinks = append(sinks, statement.DirSink{Dir: cfg.Statement.OutputDir})
		log.Info("Statement copies enabled", "dir", cfg.Statement.OutputDir)
	}
	if cfg.Statement.Bucket != "" {
		bucket, err := statement.NewBucketSink(ctx, cfg.Statement.Bucket, cfg.Statement.BucketPrefix, cfg.Statement.CredentialsFile)
		if err != nil {
			return Services{}, noClose, fmt.Errorf("statement bucket: %w", err)
		}
		sinks = append(sinks, bucket)
		closeFn = bucket.Close
		log.Info("Statement bucket enabled", "bucket", cfg.Statement.Bucket)
	}

	fbClient, err := feedback.New(feedback.Options{
		URL:        cfg.Feedback.URL,
		Timeout:    cfg.Feedback.Timeout.Duration,
		MaxRetries: cfg.Feedback.MaxRetries,
		Log:        log,
	})
	if err != nil {
		_ = closeFn()
		return Services{}, noClose, err
	}

	return Services{
		Catalog:    catalog,
		Calculator: calc,
		Statement:  services.NewStatementService(log, calc, renderer, sinks...),
		Feedback:   services.NewFeedbackService(log, fbClient),
	}, closeFn, nil
}
