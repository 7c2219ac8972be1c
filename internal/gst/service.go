package gst

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taxstack/gst-api/internal/auditlog"
	"github.com/taxstack/gst-api/internal/category"
	"github.com/taxstack/gst-api/internal/common"
	"github.com/taxstack/gst-api/internal/obs"
)

// Source identifies where the applied rate came from.
type Source string

const (
	// SourceProvided means the caller supplied an explicit rate.
	SourceProvided Source = "provided"
	// SourceDetected means an active category matched the description.
	SourceDetected Source = "detected"
	// SourceDefault means the fallback rate was used.
	SourceDefault Source = "default"
)

// Request is one validated calculation request.
type Request struct {
	Amount      float64
	Description string
	Rate        *float64
	Mode        Mode
}

// Result is the calculation outcome returned to the caller and written to
// the audit log.
type Result struct {
	NetAmount        float64 `json:"net_amount"`
	GSTAmount        float64 `json:"gst_amount"`
	GrossAmount      float64 `json:"gross_amount"`
	AppliedRate      float64 `json:"applied_rate"`
	DetectedCategory *string `json:"detected_category"`
	Source           Source  `json:"source"`
}

// CategorySource yields the categories considered during detection.
type CategorySource interface {
	List(ctx context.Context) ([]category.Category, error)
}

// AuditRecorder appends one calculation record.
type AuditRecorder interface {
	Record(ctx context.Context, entry auditlog.Entry) error
}

// Service resolves the applied rate and computes the tax breakdown.
//
// The audit write and the category read are both treated as degradable:
// a category store failure falls through to the default rate, and a failed
// audit write is logged, counted, and dropped. Tax computation stays
// available even when persistence is not.
type Service struct {
	Categories CategorySource
	Audit      AuditRecorder
	Logger     zerolog.Logger
}

// Calculate validates the request, resolves the rate, computes the
// breakdown, and best-effort persists the audit record.
func (s *Service) Calculate(ctx context.Context, req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	rate, source, detected := s.resolveRate(ctx, req)

	breakdown := Compute(req.Amount, req.Mode, rate)
	result := Result{
		NetAmount:        breakdown.Net,
		GSTAmount:        breakdown.GST,
		GrossAmount:      breakdown.Gross,
		AppliedRate:      rate,
		DetectedCategory: detected,
		Source:           source,
	}

	if obs.CalculationsTotal != nil {
		obs.CalculationsTotal.WithLabelValues(string(req.Mode), string(source)).Inc()
	}

	s.recordAudit(ctx, req, result)
	return result, nil
}

// resolveRate applies the precedence: explicit rate, then an active detected
// category, then the default. Inactive categories are never auto-applied,
// even when they score highest.
func (s *Service) resolveRate(ctx context.Context, req Request) (float64, Source, *string) {
	if req.Rate != nil {
		return *req.Rate, SourceProvided, nil
	}

	match := s.detect(ctx, req.Description)
	if match != nil && match.Active {
		name := match.Name
		return match.Rate, SourceDetected, &name
	}
	return DefaultRate, SourceDefault, nil
}

func (s *Service) detect(ctx context.Context, description string) *category.Category {
	if s.Categories == nil {
		return nil
	}
	categories, err := s.Categories.List(ctx)
	if err != nil {
		// Detection degrades to "no categories"; the failure never reaches
		// the caller.
		s.Logger.Warn().Err(err).Msg("category store unavailable, skipping detection")
		if obs.CategoryStoreErrors != nil {
			obs.CategoryStoreErrors.Inc()
		}
		categories = nil
	}
	match := Detect(description, categories)
	if obs.DetectionTotal != nil {
		result := "miss"
		if match != nil {
			result = "hit"
		}
		obs.DetectionTotal.WithLabelValues(result).Inc()
	}
	return match
}

// recordAudit writes the calculation record. Failures are swallowed: logging
// is not on the critical path and must not affect the response.
func (s *Service) recordAudit(ctx context.Context, req Request, result Result) {
	if s.Audit == nil {
		return
	}
	entry := auditlog.Entry{
		Amount:           req.Amount,
		Mode:             string(req.Mode),
		AppliedRate:      result.AppliedRate,
		NetAmount:        result.NetAmount,
		GSTAmount:        result.GSTAmount,
		GrossAmount:      result.GrossAmount,
		DetectedCategory: result.DetectedCategory,
		Source:           string(result.Source),
	}
	if desc := req.Description; desc != "" {
		entry.Description = &desc
	}
	if err := s.Audit.Record(ctx, entry); err != nil {
		s.Logger.Warn().Err(err).Msg("drop calculation audit record")
		if obs.AuditWriteFailures != nil {
			obs.AuditWriteFailures.Inc()
		}
	}
}

func validateRequest(req Request) error {
	if req.Amount < 0 {
		return common.ValidationError("amount must be greater than or equal to 0", map[string]any{"field": "amount"})
	}
	if req.Rate != nil && (*req.Rate < 0 || *req.Rate > 100) {
		return common.ValidationError("rate must be between 0 and 100", map[string]any{"field": "rate"})
	}
	if req.Mode != ModeExclusive && req.Mode != ModeInclusive {
		return common.ValidationError(ErrInvalidMode.Error(), map[string]any{"field": "mode"})
	}
	return nil
}
