// Package suite composes the classification pipeline.
//
// Classify is pure: the same bytes always produce the same Outcome. The
// Service wraps it with the side effects a transport needs (panic
// recovery, caller identity, persistence and logging), none of which can
// change or delay the response.
package suite

import (
	"errors"

	"github.com/HendryAvila/decisionsuite/internal/classifier"
	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/feedback"
	"github.com/HendryAvila/decisionsuite/internal/locale"
)

// CodeInternal tags failures the caller cannot fix.
const CodeInternal = "INTERNAL_ERROR"

// ErrInternal is the only error a Service returns besides validation
// errors. It carries no detail on purpose.
var ErrInternal = errors.New("internal error")

// Result is the aggregate of one classification.
type Result struct {
	Signals          classifier.Signals   `json:"signals"`
	HintIntensity    float64              `json:"hint_intensity"`
	HintBand         classifier.Band      `json:"hint_band"`
	PatternsDetected []classifier.Pattern `json:"patterns_detected"`
	PrimaryPattern   *classifier.Pattern  `json:"primary_pattern"`
}

// Response is the success payload returned to callers.
type Response struct {
	Result
	Feedback feedback.Copy `json:"feedback"`
}

// ErrorResponse is the failure payload returned to callers.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Outcome bundles everything produced for one artifact.
type Outcome struct {
	Artifact *decision.Artifact
	Result   Result
	Locale   locale.Locale
	Response Response
}

// Classify validates raw and runs the full pipeline. The only error it
// returns is a *decision.ValidationError.
func Classify(raw []byte) (*Outcome, error) {
	a, err := decision.Validate(raw)
	if err != nil {
		return nil, err
	}
	return Evaluate(a), nil
}

// Evaluate runs the pipeline on an already validated artifact.
func Evaluate(a *decision.Artifact) *Outcome {
	res := Aggregate(a.Decision(), classifier.DeriveFlags(a))
	loc := locale.Detect(a.Text())
	return &Outcome{
		Artifact: a,
		Result:   res,
		Locale:   loc,
		Response: Respond(res, loc),
	}
}

// Aggregate runs signal observation, pattern detection, scoring, banding
// and primary selection over a set of flags.
func Aggregate(d decision.Decision, f classifier.Flags) Result {
	signals := classifier.ObserveSignals(f)
	patterns := classifier.DetectPatterns(d, f)
	intensity := classifier.Intensity(patterns, signals)

	res := Result{
		Signals:          signals,
		HintIntensity:    intensity,
		HintBand:         classifier.DeriveBand(intensity),
		PatternsDetected: patterns,
	}
	if p, ok := classifier.SelectPrimary(patterns); ok {
		res.PrimaryPattern = &p
	}
	return res
}

// Respond attaches localized feedback to a result.
func Respond(res Result, loc locale.Locale) Response {
	return Response{
		Result:   res,
		Feedback: feedback.Resolve(res.HintBand, res.PrimaryPattern, loc),
	}
}

// ErrorBody maps an error to its caller-facing payload. Anything other
// than a validation error becomes a detail-free internal error.
func ErrorBody(err error) ErrorResponse {
	var ve *decision.ValidationError
	if errors.As(err, &ve) {
		return ErrorResponse{ErrorCode: ve.Code(), Message: ve.Error()}
	}
	return ErrorResponse{ErrorCode: CodeInternal, Message: ErrInternal.Error()}
}
