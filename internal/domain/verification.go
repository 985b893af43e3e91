package domain

import "strings"

// VerificationStatus is the derived review state of a driver.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// MaxRejectionReasonLength bounds the stored rejection reason, in characters.
const MaxRejectionReasonLength = 500

// VerificationRecord is the raw verification data stored for a driver.
// IsVerified is nil until a decision has been recorded.
type VerificationRecord struct {
	IsVerified      *bool
	RejectionReason *string
}

// Status classifies the record. A false flag without a reason is still
// pending: rejection needs an explicit reason.
func (r VerificationRecord) Status() VerificationStatus {
	if r.IsVerified == nil {
		return VerificationPending
	}
	if *r.IsVerified {
		return VerificationVerified
	}
	if r.RejectionReason != nil && strings.TrimSpace(*r.RejectionReason) != "" {
		return VerificationRejected
	}
	return VerificationPending
}

// Reason returns the rejection reason, or "" when absent.
func (r VerificationRecord) Reason() string {
	if r.RejectionReason == nil {
		return ""
	}
	return *r.RejectionReason
}

// Equal reports whether both records store the same flag and reason.
func (r VerificationRecord) Equal(o VerificationRecord) bool {
	if (r.IsVerified == nil) != (o.IsVerified == nil) {
		return false
	}
	if r.IsVerified != nil && *r.IsVerified != *o.IsVerified {
		return false
	}
	if (r.RejectionReason == nil) != (o.RejectionReason == nil) {
		return false
	}
	return r.RejectionReason == nil || *r.RejectionReason == *o.RejectionReason
}

// VerificationActionKind names an administrator decision.
type VerificationActionKind string

const (
	ActionVerify         VerificationActionKind = "VERIFY"
	ActionReject         VerificationActionKind = "REJECT"
	ActionRejectNoReason VerificationActionKind = "REJECT_NO_REASON"
)

// VerificationAction is a decision applied to a VerificationRecord.
type VerificationAction struct {
	Kind   VerificationActionKind
	Reason string
}

// StatusFilter selects drivers by verification status.
type StatusFilter string

const (
	FilterAll      StatusFilter = "ALL"
	FilterPending  StatusFilter = "PENDING"
	FilterVerified StatusFilter = "VERIFIED"
	FilterRejected StatusFilter = "REJECTED"
)

// Matches reports whether a driver with the given status passes the filter.
func (f StatusFilter) Matches(status VerificationStatus) bool {
	if f == FilterAll {
		return true
	}
	return VerificationStatus(f) == status
}
