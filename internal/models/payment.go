package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses. NONE_REQUIRED is terminal and assigned at creation
// for free offerings; it counts as satisfied for completion.
const (
	PaymentNoneRequired  = "NONE_REQUIRED"
	PaymentPendingProof  = "PENDING_PROOF"
	PaymentPendingReview = "PENDING_REVIEW"
	PaymentApproved      = "APPROVED"
	PaymentRejected      = "REJECTED"
)

// Payment methods accepted at creation. Anything else is rejected
// before a record is written.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCard     = "card"
)

// PaymentTransitions is the full set of legal payment state changes.
// A rejected payment resubmits straight back into review: attaching a
// new proof is a single combined step.
var PaymentTransitions = map[string][]string{
	PaymentNoneRequired:  {},
	PaymentPendingProof:  {PaymentPendingReview},
	PaymentPendingReview: {PaymentApproved, PaymentRejected},
	PaymentApproved:      {},
	PaymentRejected:      {PaymentPendingReview},
}

func ValidPaymentMethod(m string) bool {
	return m == MethodCash || m == MethodTransfer || m == MethodCard
}

// Payment tracks the monetary requirement of one registration. One row
// per cost-bearing registration; free offerings get a NONE_REQUIRED row
// so completion aggregation never special-cases a missing payment.
type Payment struct {
	gorm.Model
	RegistrationID uint         `json:"registration_id" gorm:"uniqueIndex"`
	Registration   Registration `json:"-"`
	AmountCents    int64        `json:"amount_cents"`
	Method         string       `json:"method"`
	ProofFileRef   string       `json:"proof_file_ref"`
	Status         string       `json:"status"`
	RejectComment  string       `json:"reject_comment"`
	SubmittedAt    *time.Time   `json:"submitted_at"`
	ReviewedByID   *uint        `json:"reviewed_by_id"`
	ReviewedAt     *time.Time   `json:"reviewed_at"`
}

// Satisfied reports whether this payment no longer blocks completion.
func (p *Payment) Satisfied() bool {
	return p.Status == PaymentApproved || p.Status == PaymentNoneRequired
}

func CanTransitionPayment(from, to string) bool {
	for _, s := range PaymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
