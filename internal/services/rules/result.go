package rules

import (
	"github.com/cockroachdb/errors"
)

// Class distinguishes how a rejection should be presented to the caller
type Class string

const (
	// ClassAuthorization covers who may act: not a player, not your turn
	ClassAuthorization Class = "authorization"
	// ClassContent covers what was submitted or the state it was submitted against
	ClassContent Class = "content"
)

// RuleResult is the immutable outcome of evaluating one rule
type RuleResult struct {
	Rule    string `json:"rule"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
	Class   Class  `json:"class,omitempty"`
}

// Pass returns a passing result for the rule
func Pass(rule string) RuleResult {
	return RuleResult{Rule: rule, Passed: true}
}

// Fail returns a content-class failure for the rule
func Fail(rule, message string) RuleResult {
	return RuleResult{Rule: rule, Passed: false, Message: message, Class: ClassContent}
}

// Deny returns an authorization-class failure for the rule
func Deny(rule, message string) RuleResult {
	return RuleResult{Rule: rule, Passed: false, Message: message, Class: ClassAuthorization}
}

// RejectionError carries the first failing rule out of the orchestration layer
type RejectionError struct {
	Result RuleResult
}

// Reject wraps a failing result as an error
func Reject(result RuleResult) *RejectionError {
	return &RejectionError{Result: result}
}

// Error implements the error interface with the user-facing message
func (e *RejectionError) Error() string {
	return e.Result.Message
}

// IsAuthorization returns true if the rejection concerns who may act
func (e *RejectionError) IsAuthorization() bool {
	return e.Result.Class == ClassAuthorization
}

// AsRejection extracts a RejectionError from an error chain
func AsRejection(err error) (*RejectionError, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
