package suite

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/identity"
	"github.com/HendryAvila/decisionsuite/internal/outbox"
)

// classify is a package-level var to allow test injection.
var classify = Classify

// Service runs classifications for transports.
type Service struct {
	sink   outbox.Sink
	users  identity.Resolver
	logger *zap.Logger
}

// NewService wires a Service. A nil sink discards records, a nil resolver
// treats every caller as anonymous and a nil logger is silent.
func NewService(sink outbox.Sink, users identity.Resolver, logger *zap.Logger) *Service {
	if sink == nil {
		sink = outbox.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sink: sink, users: users, logger: logger.Named("suite")}
}

// Classify runs the pipeline on raw and hands the outcome to the sink.
// It returns a *decision.ValidationError for bad input and ErrInternal for
// anything unexpected, including panics.
func (s *Service) Classify(ctx context.Context, raw []byte) (out *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("classification panicked", zap.Any("panic", r), zap.Stack("stack"))
			out, err = nil, ErrInternal
		}
	}()

	out, err = classify(raw)
	if err != nil {
		var ve *decision.ValidationError
		if errors.As(err, &ve) {
			s.logger.Debug("artifact rejected", zap.Int("violations", len(ve.Violations)))
			return nil, err
		}
		s.logger.Error("classification failed", zap.Error(err))
		return nil, ErrInternal
	}

	s.logger.Debug("artifact classified",
		zap.String("band", string(out.Result.HintBand)),
		zap.Float64("intensity", out.Result.HintIntensity),
		zap.String("locale", string(out.Locale)),
	)
	s.persist(ctx, out)
	return out, nil
}

// UserID resolves the caller, logging and swallowing resolution errors.
func (s *Service) UserID(ctx context.Context) string {
	if s.users == nil {
		return identity.Anonymous
	}
	user, err := s.users.Resolve(ctx)
	if err != nil {
		s.logger.Warn("caller treated as anonymous", zap.Error(err))
		return identity.Anonymous
	}
	return user
}

func (s *Service) persist(ctx context.Context, out *Outcome) {
	rec, err := NewRecord(out, s.UserID(ctx))
	if err != nil {
		s.logger.Error("encode classification record", zap.Error(err))
		return
	}
	s.sink.Submit(rec)
}

// NewRecord converts an outcome into an outbox record.
func NewRecord(out *Outcome, userID string) (outbox.Record, error) {
	artifact, err := json.Marshal(out.Artifact)
	if err != nil {
		return outbox.Record{}, err
	}
	result, err := json.Marshal(out.Result)
	if err != nil {
		return outbox.Record{}, err
	}

	rec := outbox.Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		Locale:        string(out.Locale),
		HintBand:      string(out.Result.HintBand),
		HintIntensity: out.Result.HintIntensity,
		Artifact:      artifact,
		Result:        result,
	}
	if p := out.Result.PrimaryPattern; p != nil {
		rec.PrimaryPattern = string(*p)
	}
	return rec, nil
}
