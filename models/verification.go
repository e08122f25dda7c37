package models

import (
	"errors"
	"time"
)

var (
	ErrVerifierMissing     = errors.New("add a user to verified_by")
	ErrVerifiedFlagStale   = errors.New("is_verified needs to be updated")
	ErrVerifiedDateMissing = errors.New("date_verified needs to be updated")
)

// Verification is the review state of a question. The zero value is
// unverified; the only way to reach the verified state is VerifiedBy, which
// records the reviewer and the timestamp together, so a verified question
// always carries both.
type Verification struct {
	byID int
	at   time.Time
}

// VerifiedBy builds the verified state for the given reviewer.
func VerifiedBy(userID int, at time.Time) Verification {
	return Verification{byID: userID, at: at}
}

func (v Verification) Verified() bool {
	return v.byID != 0
}

// By returns the reviewer's user id, false when unverified.
func (v Verification) By() (int, bool) {
	return v.byID, v.byID != 0
}

// At returns the verification timestamp, false when unverified.
func (v Verification) At() (time.Time, bool) {
	return v.at, v.byID != 0
}

// NewVerification rebuilds the state from the stored triple and rejects
// rows where the three fields disagree.
func NewVerification(isVerified bool, byID *int, at *time.Time) (Verification, error) {
	if isVerified && byID == nil {
		return Verification{}, ErrVerifierMissing
	}
	if byID != nil && !isVerified {
		return Verification{}, ErrVerifiedFlagStale
	}
	if isVerified && at == nil {
		return Verification{}, ErrVerifiedDateMissing
	}
	if !isVerified {
		return Verification{}, nil
	}
	return Verification{byID: *byID, at: *at}, nil
}

// Columns flattens the state back into the stored triple.
func (v Verification) Columns() (isVerified bool, byID *int, at *time.Time) {
	if v.byID == 0 {
		return false, nil, nil
	}
	id, t := v.byID, v.at
	return true, &id, &t
}
