package gst

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taxstack/gst-api/internal/auditlog"
	"github.com/taxstack/gst-api/internal/category"
	"github.com/taxstack/gst-api/internal/common"
)

type fakeCategorySource struct {
	categories []category.Category
	err        error
	calls      int
}

func (f *fakeCategorySource) List(context.Context) ([]category.Category, error) {
	f.calls++
	return f.categories, f.err
}

type fakeAuditRecorder struct {
	entries []auditlog.Entry
	err     error
}

func (f *fakeAuditRecorder) Record(_ context.Context, entry auditlog.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func newTestService(src *fakeCategorySource, audit *fakeAuditRecorder) *Service {
	svc := &Service{Logger: zerolog.Nop()}
	if src != nil {
		svc.Categories = src
	}
	if audit != nil {
		svc.Audit = audit
	}
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestCalculateProvidedRateSkipsDetection(t *testing.T) {
	src := &fakeCategorySource{categories: testCategories()}
	audit := &fakeAuditRecorder{}
	svc := newTestService(src, audit)

	res, err := svc.Calculate(context.Background(), Request{
		Amount:      100,
		Description: "gaming laptop",
		Rate:        floatPtr(12),
		Mode:        ModeExclusive,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Source != SourceProvided {
		t.Errorf("source = %q, want provided", res.Source)
	}
	if res.AppliedRate != 12 {
		t.Errorf("applied rate = %v, want 12", res.AppliedRate)
	}
	if res.DetectedCategory != nil {
		t.Errorf("detected category should be nil when rate is explicit")
	}
	if src.calls != 0 {
		t.Errorf("category store consulted %d times, want 0", src.calls)
	}
	if res.GSTAmount != 12 || res.GrossAmount != 112 {
		t.Errorf("breakdown = %+v", res)
	}
}

func TestCalculateDetectedRate(t *testing.T) {
	src := &fakeCategorySource{categories: testCategories()}
	audit := &fakeAuditRecorder{}
	svc := newTestService(src, audit)

	res, err := svc.Calculate(context.Background(), Request{
		Amount:      1000,
		Description: "gaming laptop",
		Mode:        ModeExclusive,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Source != SourceDetected {
		t.Fatalf("source = %q, want detected", res.Source)
	}
	if res.AppliedRate != 18 {
		t.Errorf("applied rate = %v, want 18", res.AppliedRate)
	}
	if res.DetectedCategory == nil || *res.DetectedCategory != "Electronics" {
		t.Errorf("detected category = %v, want Electronics", res.DetectedCategory)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Source != "detected" || entry.AppliedRate != 18 {
		t.Errorf("audit entry = %+v", entry)
	}
	if entry.Description == nil || *entry.Description != "gaming laptop" {
		t.Errorf("audit description = %v", entry.Description)
	}
}

func TestCalculateInactiveCategoryFallsBack(t *testing.T) {
	src := &fakeCategorySource{categories: testCategories()}
	svc := newTestService(src, nil)

	res, err := svc.Calculate(context.Background(), Request{
		Amount:      500,
		Description: "private yacht charter",
		Mode:        ModeExclusive,
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Source != SourceDefault {
		t.Errorf("source = %q, want default", res.Source)
	}
	if res.AppliedRate != DefaultRate {
		t.Errorf("applied rate = %v, want %v", res.AppliedRate, DefaultRate)
	}
	if res.DetectedCategory != nil {
		t.Errorf("inactive category must not be reported as detected")
	}
}

func TestCalculateStoreFailureDegradesToDefault(t *testing.T) {
	src := &fakeCategorySource{err: errors.New("connection refused")}
	audit := &fakeAuditRecorder{}
	svc := newTestService(src, audit)

	res, err := svc.Calculate(context.Background(), Request{
		Amount:      100,
		Description: "gaming laptop",
		Mode:        ModeExclusive,
	})
	if err != nil {
		t.Fatalf("store failure must not fail the calculation: %v", err)
	}
	if res.Source != SourceDefault || res.AppliedRate != DefaultRate {
		t.Errorf("result = %+v, want default rate", res)
	}
	if len(audit.entries) != 1 {
		t.Errorf("audit entries = %d, want 1", len(audit.entries))
	}
}

func TestCalculateAuditFailureSwallowed(t *testing.T) {
	src := &fakeCategorySource{categories: testCategories()}
	audit := &fakeAuditRecorder{err: errors.New("insert failed")}
	svc := newTestService(src, audit)

	res, err := svc.Calculate(context.Background(), Request{
		Amount: 100,
		Mode:   ModeInclusive,
	})
	if err != nil {
		t.Fatalf("audit failure must not fail the calculation: %v", err)
	}
	if res.GrossAmount != 100 {
		t.Errorf("gross = %v, want 100", res.GrossAmount)
	}
}

func TestCalculateValidation(t *testing.T) {
	svc := newTestService(nil, &fakeAuditRecorder{})

	cases := []struct {
		name string
		req  Request
	}{
		{"negative amount", Request{Amount: -1, Mode: ModeExclusive}},
		{"rate above 100", Request{Amount: 10, Rate: floatPtr(101), Mode: ModeExclusive}},
		{"negative rate", Request{Amount: 10, Rate: floatPtr(-1), Mode: ModeExclusive}},
		{"invalid mode", Request{Amount: 10, Mode: Mode("gross")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Calculate(context.Background(), tc.req)
			var appErr *common.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, want VALIDATION_ERROR", appErr.Code)
			}
		})
	}

	audit := svc.Audit.(*fakeAuditRecorder)
	if len(audit.entries) != 0 {
		t.Errorf("rejected requests must not be audited, got %d entries", len(audit.entries))
	}
}

func TestCalculateZeroAmount(t *testing.T) {
	svc := newTestService(nil, nil)
	res, err := svc.Calculate(context.Background(), Request{Amount: 0, Mode: ModeExclusive})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.NetAmount != 0 || res.GSTAmount != 0 || res.GrossAmount != 0 {
		t.Errorf("zero amount breakdown = %+v", res)
	}
	if res.Source != SourceDefault {
		t.Errorf("source = %q, want default", res.Source)
	}
}
