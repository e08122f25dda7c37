package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationZeroValueIsUnverified(t *testing.T) {
	var v Verification
	assert.False(t, v.Verified())

	_, ok := v.By()
	assert.False(t, ok)
	_, ok = v.At()
	assert.False(t, ok)
}

func TestVerifiedByCarriesVerifierAndDate(t *testing.T) {
	at := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	v := VerifiedBy(7, at)

	assert.True(t, v.Verified())
	by, ok := v.By()
	require.True(t, ok)
	assert.Equal(t, 7, by)
	got, ok := v.At()
	require.True(t, ok)
	assert.Equal(t, at, got)
}

func TestNewVerificationConsistentRows(t *testing.T) {
	at := time.Now()
	id := 3

	v, err := NewVerification(true, &id, &at)
	require.NoError(t, err)
	assert.True(t, v.Verified())

	v, err = NewVerification(false, nil, nil)
	require.NoError(t, err)
	assert.False(t, v.Verified())
}

func TestNewVerificationInconsistentRows(t *testing.T) {
	at := time.Now()
	id := 3

	_, err := NewVerification(true, nil, &at)
	assert.ErrorIs(t, err, ErrVerifierMissing)

	_, err = NewVerification(false, &id, &at)
	assert.ErrorIs(t, err, ErrVerifiedFlagStale)

	_, err = NewVerification(true, &id, nil)
	assert.ErrorIs(t, err, ErrVerifiedDateMissing)
}

func TestVerificationColumnsRoundTrip(t *testing.T) {
	at := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	v := VerifiedBy(9, at)

	isVerified, byID, dateVerified := v.Columns()
	require.True(t, isVerified)
	require.NotNil(t, byID)
	require.NotNil(t, dateVerified)

	back, err := NewVerification(isVerified, byID, dateVerified)
	require.NoError(t, err)
	assert.Equal(t, v, back)

	isVerified, byID, dateVerified = Verification{}.Columns()
	assert.False(t, isVerified)
	assert.Nil(t, byID)
	assert.Nil(t, dateVerified)
}

func TestQuestionVerifyAndUnverify(t *testing.T) {
	q := Question{ID: 1, Question: "What is the capital of France?"}
	assert.False(t, q.Verification.Verified())

	at := time.Now()
	q.Verify(4, at)
	assert.True(t, q.Verification.Verified())
	by, _ := q.Verification.By()
	assert.Equal(t, 4, by)

	q.Unverify()
	assert.False(t, q.Verification.Verified())
	_, ok := q.Verification.By()
	assert.False(t, ok)
}
