package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"rideshare/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

var (
	pendingRecord  = domain.VerificationRecord{}
	verifiedRecord = domain.VerificationRecord{IsVerified: boolPtr(true)}
	rejectedRecord = domain.VerificationRecord{IsVerified: boolPtr(false), RejectionReason: strPtr("Blurry license photo")}
	limboRecord    = domain.VerificationRecord{IsVerified: boolPtr(false)}
)

// ──────────────────────────────────────────────
// 1. TRANSITIONS
// ──────────────────────────────────────────────

func TestTransition_Verify(t *testing.T) {
	t.Parallel()

	for name, record := range map[string]domain.VerificationRecord{
		"from pending":  pendingRecord,
		"from verified": verifiedRecord,
		"from rejected": rejectedRecord,
		"from limbo":    limboRecord,
	} {
		record := record
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			next, err := Transition(record, domain.VerificationAction{Kind: domain.ActionVerify})
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if next.Status() != domain.VerificationVerified {
				t.Errorf("expected VERIFIED, got %s", next.Status())
			}
			if next.RejectionReason != nil {
				t.Errorf("expected reason cleared, got %q", *next.RejectionReason)
			}
		})
	}
}

func TestTransition_VerifyIsIdempotent(t *testing.T) {
	t.Parallel()

	once, err := Transition(rejectedRecord, domain.VerificationAction{Kind: domain.ActionVerify})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	twice, err := Transition(once, domain.VerificationAction{Kind: domain.ActionVerify})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if *once.IsVerified != *twice.IsVerified || once.RejectionReason != nil || twice.RejectionReason != nil {
		t.Errorf("expected identical verified records, got %+v and %+v", once, twice)
	}
}

func TestTransition_Reject(t *testing.T) {
	t.Parallel()

	next, err := Transition(verifiedRecord, domain.VerificationAction{Kind: domain.ActionReject, Reason: "  License expired  "})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if next.Status() != domain.VerificationRejected {
		t.Errorf("expected REJECTED, got %s", next.Status())
	}
	if next.Reason() != "License expired" {
		t.Errorf("expected trimmed reason, got %q", next.Reason())
	}
	if verifiedRecord.Status() != domain.VerificationVerified {
		t.Error("expected input record to be left untouched")
	}
}

func TestTransition_RejectValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		action  domain.VerificationAction
		wantErr error
	}{
		{name: "empty reason", action: domain.VerificationAction{Kind: domain.ActionReject, Reason: ""}, wantErr: ErrRejectionReasonRequired},
		{name: "whitespace reason", action: domain.VerificationAction{Kind: domain.ActionReject, Reason: " \n\t "}, wantErr: ErrRejectionReasonRequired},
		{name: "reject without reason", action: domain.VerificationAction{Kind: domain.ActionRejectNoReason}, wantErr: ErrRejectionReasonRequired},
		{name: "too long", action: domain.VerificationAction{Kind: domain.ActionReject, Reason: strings.Repeat("x", 501)}, wantErr: ErrRejectionReasonTooLong},
		{name: "unknown action", action: domain.VerificationAction{Kind: "UNVERIFY"}, wantErr: ErrInvalidVerificationAction},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next, err := Transition(pendingRecord, tc.action)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected a validation error, got: %v", err)
			}
			if next.Status() != domain.VerificationPending || next.IsVerified != nil {
				t.Errorf("expected record unchanged, got %+v", next)
			}
		})
	}
}

func TestTransition_ReasonLengthCountsCharacters(t *testing.T) {
	t.Parallel()

	// 500 multi-byte characters is within the limit.
	reason := strings.Repeat("é", 500)
	next, err := Transition(pendingRecord, domain.VerificationAction{Kind: domain.ActionReject, Reason: reason})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if next.Reason() != reason {
		t.Error("expected reason to be stored as given")
	}
}

func TestCheckVerificationInvariant(t *testing.T) {
	t.Parallel()

	if err := CheckVerificationInvariant(verifiedRecord); err != nil {
		t.Errorf("expected verified record to pass, got: %v", err)
	}
	if err := CheckVerificationInvariant(rejectedRecord); err != nil {
		t.Errorf("expected rejected record to pass, got: %v", err)
	}

	stale := domain.VerificationRecord{IsVerified: boolPtr(true), RejectionReason: strPtr("old reason")}
	if err := CheckVerificationInvariant(stale); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected invariant violation, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. AGGREGATION, FILTERING, PAGINATION
// ──────────────────────────────────────────────

func sampleDrivers() []*domain.Driver {
	records := []domain.VerificationRecord{
		pendingRecord, verifiedRecord, rejectedRecord, limboRecord, verifiedRecord,
		{IsVerified: boolPtr(false), RejectionReason: strPtr("   ")},
	}
	drivers := make([]*domain.Driver, 0, len(records))
	for i, r := range records {
		drivers = append(drivers, &domain.Driver{ID: fmt.Sprintf("driver-%d", i), VerificationRecord: r})
	}
	return drivers
}

func TestAggregateDrivers_Partitions(t *testing.T) {
	t.Parallel()

	stats := AggregateDrivers(sampleDrivers())

	want := VerificationStats{Pending: 3, Verified: 2, Rejected: 1, Total: 6}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
	if stats.Pending+stats.Verified+stats.Rejected != stats.Total {
		t.Error("expected buckets to sum to total")
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	if stats := Aggregate(nil); stats != (VerificationStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestFilterDrivers_AgreesWithAggregate(t *testing.T) {
	t.Parallel()

	drivers := sampleDrivers()
	stats := AggregateDrivers(drivers)

	if got := len(FilterDrivers(drivers, domain.FilterAll)); got != stats.Total {
		t.Errorf("ALL: expected %d, got %d", stats.Total, got)
	}
	if got := len(FilterDrivers(drivers, domain.FilterPending)); got != stats.Pending {
		t.Errorf("PENDING: expected %d, got %d", stats.Pending, got)
	}
	if got := len(FilterDrivers(drivers, domain.FilterVerified)); got != stats.Verified {
		t.Errorf("VERIFIED: expected %d, got %d", stats.Verified, got)
	}

	rejected := FilterDrivers(drivers, domain.FilterRejected)
	if len(rejected) != 1 || rejected[0].ID != "driver-2" {
		t.Errorf("REJECTED: expected only driver-2, got %d drivers", len(rejected))
	}
}

func TestParseStatusFilter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in      string
		want    domain.StatusFilter
		wantErr bool
	}{
		{in: "", want: domain.FilterAll},
		{in: "all", want: domain.FilterAll},
		{in: "pending", want: domain.FilterPending},
		{in: "Verified", want: domain.FilterVerified},
		{in: " REJECTED ", want: domain.FilterRejected},
		{in: "approved", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseStatusFilter(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidStatusFilter) {
				t.Errorf("%q: expected ErrInvalidStatusFilter, got: %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("%q: expected %s, got %s (err %v)", tc.in, tc.want, got, err)
		}
	}
}

func TestPaginateDrivers(t *testing.T) {
	t.Parallel()

	drivers := make([]*domain.Driver, 23)
	for i := range drivers {
		drivers[i] = &domain.Driver{ID: fmt.Sprintf("driver-%02d", i)}
	}

	testCases := []struct {
		name      string
		page      int
		pageSize  int
		wantItems int
		wantFirst string
		wantPages int
		wantSize  int
	}{
		{name: "default size", page: 1, pageSize: 0, wantItems: 10, wantFirst: "driver-00", wantPages: 3, wantSize: 10},
		{name: "last partial page", page: 3, pageSize: 10, wantItems: 3, wantFirst: "driver-20", wantPages: 3, wantSize: 10},
		{name: "page past the end", page: 4, pageSize: 10, wantItems: 0, wantPages: 3, wantSize: 10},
		{name: "page below one", page: -2, pageSize: 5, wantItems: 5, wantFirst: "driver-00", wantPages: 5, wantSize: 5},
		{name: "size capped", page: 1, pageSize: 1000, wantItems: 23, wantFirst: "driver-00", wantPages: 1, wantSize: 100},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page := PaginateDrivers(drivers, tc.page, tc.pageSize)
			if len(page.Items) != tc.wantItems {
				t.Fatalf("expected %d items, got %d", tc.wantItems, len(page.Items))
			}
			if tc.wantItems > 0 && page.Items[0].ID != tc.wantFirst {
				t.Errorf("expected first %s, got %s", tc.wantFirst, page.Items[0].ID)
			}
			if page.TotalPages != tc.wantPages || page.TotalItems != 23 || page.PageSize != tc.wantSize {
				t.Errorf("unexpected page metadata: %+v", page)
			}
			if page.Items == nil {
				t.Error("expected non-nil items")
			}
		})
	}
}
