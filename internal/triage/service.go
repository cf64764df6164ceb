package triage

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/linnemanlabs/voxa/internal/triage"

var errNilInput = errors.New("triage: nil input")

// Notifier delivers classified results to staff. Called asynchronously.
type Notifier interface {
	Notify(ctx context.Context, r *Result) error
}

// Service is the business boundary for triage: validation, classification,
// result IDs, metrics, tracing and notification dispatch. It keeps no
// per-request state.
type Service struct {
	classifier Classifier
	logger     log.Logger
	metrics    *Metrics
	notifier   Notifier
	notifyAt   Tier
}

// NewService creates a new triage service. Results at or above notifyAt are
// sent to notifier when one is configured.
func NewService(classifier Classifier, logger log.Logger, metrics *Metrics, notifier Notifier, notifyAt Tier) *Service {
	if classifier == nil {
		panic(xerrors.New("classifier is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	if notifyAt.Rank() < 0 {
		notifyAt = TierRed
	}
	return &Service{
		classifier: classifier,
		logger:     logger,
		metrics:    metrics,
		notifier:   notifier,
		notifyAt:   notifyAt,
	}
}

// Strategy returns the name of the configured classifier.
func (s *Service) Strategy() string { return s.classifier.Name() }

// Classify validates in and classifies it.
func (s *Service) Classify(ctx context.Context, in *Input) (*Result, error) {
	if in == nil {
		return nil, errNilInput
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "triage.Classify", trace.WithAttributes(
		attribute.String("voxa.triage.strategy", s.classifier.Name()),
		attribute.Int("voxa.triage.selected", len(in.Selected)),
	))
	defer span.End()

	if err := in.Validate(); err != nil {
		s.recordInvalid(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}

	start := time.Now()
	r := s.classifier.Classify(in)
	elapsed := time.Since(start)

	r.ID = ulid.Make().String()
	r.ClassifiedAt = start.UTC()

	s.metrics.observeResult(r, elapsed.Seconds())

	span.SetAttributes(
		attribute.String("voxa.triage.id", r.ID),
		attribute.String("voxa.triage.tier", string(r.Tier)),
		attribute.Int("voxa.triage.reasons", len(r.Reasons)),
		attribute.Int("voxa.triage.free_text_items", len(r.FreeText)),
	)

	// free text can carry patient details, log only its shape
	s.logger.Info(ctx, "classified",
		"triage_id", r.ID,
		"tier", r.Tier,
		"strategy", r.Strategy,
		"reasons", len(r.Reasons),
		"free_text_items", len(r.FreeText),
		"rules", r.Rules,
		"duration", elapsed.Seconds(),
	)

	if s.notifier != nil && r.Tier.Rank() >= s.notifyAt.Rank() {
		cp := *r
		go s.notify(context.WithoutCancel(ctx), &cp)
	}

	return r, nil
}

func (s *Service) notify(ctx context.Context, r *Result) {
	err := s.notifier.Notify(ctx, r)
	s.metrics.observeNotification(err)
	if err != nil {
		s.logger.Error(ctx, err, "notification failed", "triage_id", r.ID, "tier", r.Tier)
	}
}

func (s *Service) recordInvalid(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.metrics.observeInvalid(ve.Field)
		return
	}
	s.metrics.observeInvalid("unknown")
}
