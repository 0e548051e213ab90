package pipeline

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bizplan_forecast/pkg/core/projection"
	"bizplan_forecast/pkg/core/store"
	"bizplan_forecast/pkg/metrics"
	"bizplan_forecast/pkg/models"
)

const tracerName = "bizplan_forecast/pipeline"

// Result is a projection plus how it was obtained.
type Result struct {
	Results     *models.OperatingResults
	Fingerprint string
	Cached      bool
}

// Service wraps the projection engine with a fingerprint cache.
// The engine stays pure; caching, metrics and logging live here.
type Service struct {
	engine  *projection.Engine
	cache   store.ResultCache
	metrics *metrics.Metrics
	log     *zap.Logger
	tracer  trace.Tracer
}

// NewService creates the projection service. A nil cache disables caching.
func NewService(cache store.ResultCache, m *metrics.Metrics, log *zap.Logger) *Service {
	if cache == nil {
		cache = store.NopCache{}
	}
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		engine:  projection.NewEngine(),
		cache:   cache,
		metrics: m,
		log:     log,
		tracer:  otel.Tracer(tracerName),
	}
}

// Run returns the projection of plan. Cache failures are logged and never
// fail the call; only a cancelled context does.
func (s *Service) Run(ctx context.Context, plan models.BusinessPlanData) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "context done")
		return nil, err
	}

	// 1. Fingerprint
	key, err := store.Fingerprint(plan)
	if err != nil {
		s.log.Warn("fingerprint failed, computing without cache", zap.Error(err))
		s.metrics.CacheErrors.WithLabelValues("fingerprint").Inc()
		return &Result{Results: s.compute(plan)}, nil
	}
	span.SetAttributes(attribute.String("fingerprint", key))

	// 2. Lookup
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.ProjectionsTotal.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.Bool("cached", true))
		s.log.Debug("projection served from cache", zap.String("fingerprint", key))
		return &Result{Results: cached, Fingerprint: key, Cached: true}, nil
	case !errors.Is(err, store.ErrCacheMiss):
		s.metrics.CacheErrors.WithLabelValues("get").Inc()
		span.RecordError(err)
		s.log.Warn("cache lookup failed", zap.String("fingerprint", key), zap.Error(err))
	}

	// 3. Compute
	res := s.compute(plan)
	s.metrics.ProjectionsTotal.WithLabelValues("miss").Inc()
	span.SetAttributes(
		attribute.Bool("cached", false),
		attribute.Int("years", len(res.Years)),
	)

	// 4. Store
	if err := s.cache.Set(ctx, key, res); err != nil {
		s.metrics.CacheErrors.WithLabelValues("set").Inc()
		span.RecordError(err)
		s.log.Warn("cache store failed", zap.String("fingerprint", key), zap.Error(err))
	}

	s.log.Info("projection computed",
		zap.String("fingerprint", key),
		zap.Int("years", len(res.Years)),
		zap.Float64("npv", res.Summary.NPV),
	)
	return &Result{Results: res, Fingerprint: key}, nil
}

func (s *Service) compute(plan models.BusinessPlanData) *models.OperatingResults {
	start := time.Now()
	res := s.engine.Run(plan)
	s.metrics.ProjectionDuration.Observe(time.Since(start).Seconds())
	return res
}
