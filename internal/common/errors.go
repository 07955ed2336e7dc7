package common

import (
	"errors"
	"fmt"
	"strings"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Member errors
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberExists    = errors.New("member already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidNickname = errors.New("invalid nickname")

	// Area errors
	ErrMalformedAreaID = errors.New("malformed area id")

	// Point errors
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidAmount      = errors.New("invalid point amount")
	ErrAlreadyAwarded     = errors.New("reaction award already granted")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Denial rule identifiers carried by PermissionDeniedError.
const (
	RuleRankExceeded       = "rank_exceeded"
	RuleOwnerRequired      = "owner_required"
	RuleSelfDemotion       = "self_demotion_blocked"
	RuleIncompleteArea     = "incomplete_area"
	RuleUserManagement     = "user_management_required"
	RuleAreaWriteForbidden = "area_write_forbidden"
)

// PermissionDeniedError reports which authorization rule rejected the request.
// Matches errors.Is(err, ErrForbidden).
type PermissionDeniedError struct {
	Rule string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Rule)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrForbidden
}

// PermissionDenied builds a PermissionDeniedError for a rule.
func PermissionDenied(rule string) error {
	return &PermissionDeniedError{Rule: rule}
}

// IncompleteAreaSelectionError reports which area fields a scoped role change
// is missing. Matches errors.Is(err, ErrInvalidInput).
type IncompleteAreaSelectionError struct {
	Missing []string
}

func (e *IncompleteAreaSelectionError) Error() string {
	return fmt.Sprintf("incomplete area selection: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteAreaSelectionError) Unwrap() error {
	return ErrInvalidInput
}
