package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_CodeIsSixDigits(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	for i := 0; i < 50; i++ {
		code, err := r.Issue("a@x.com")
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestVerify_HappyPath_ConsumesCode(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	code, err := r.Issue("a@x.com")
	require.NoError(t, err)

	require.NoError(t, r.Verify("a@x.com", code))

	// Second attempt with the same code: entry is gone.
	err = r.Verify("a@x.com", code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerify_UnknownEmail(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	assert.ErrorIs(t, r.Verify("nobody@x.com", "123456"), ErrNotFound)
}

func TestVerify_WrongCode_KeepsChallenge(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	code, err := r.Issue("a@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, r.Verify("a@x.com", wrong), ErrMismatch)

	// The correct code still works afterwards.
	assert.NoError(t, r.Verify("a@x.com", code))
}

func TestVerify_Expired_DeletesChallenge(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	code, err := r.Issue("a@x.com")
	require.NoError(t, err)

	r.now = func() time.Time { return time.Now().Add(3 * time.Minute) }
	assert.ErrorIs(t, r.Verify("a@x.com", code), ErrExpired)

	// Expiry consumed the entry.
	assert.ErrorIs(t, r.Verify("a@x.com", code), ErrNotFound)
}

func TestIssue_ReissueInvalidatesPreviousCode(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	first, err := r.Issue("a@x.com")
	require.NoError(t, err)
	second, err := r.Issue("a@x.com")
	require.NoError(t, err)

	if first == second {
		t.Skip("codes collided; reissue indistinguishable")
	}
	assert.ErrorIs(t, r.Verify("a@x.com", first), ErrMismatch)
	assert.NoError(t, r.Verify("a@x.com", second))
}

func TestIssue_IndependentEmails(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	codeA, err := r.Issue("a@x.com")
	require.NoError(t, err)
	codeB, err := r.Issue("b@x.com")
	require.NoError(t, err)

	require.NoError(t, r.Verify("a@x.com", codeA))
	require.NoError(t, r.Verify("b@x.com", codeB))
}

func TestVerify_LeadingZerosSignificant(t *testing.T) {
	r := NewRegistry(2 * time.Minute)
	r.mu.Lock()
	r.m["a@x.com"] = challenge{code: "100000", expiresAt: time.Now().Add(time.Minute)}
	r.mu.Unlock()

	// "0100000" is numerically equal but not an exact string match.
	assert.ErrorIs(t, r.Verify("a@x.com", "0100000"), ErrMismatch)
	assert.NoError(t, r.Verify("a@x.com", "100000"))
}
