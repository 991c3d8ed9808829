package models

import "time"

// Storage keys for the observatory guard records. They are stable across releases;
// changing them silently logs every admin out.
const (
	LockStateKey = "admin_lock"
	AuthStateKey = "admin_auth"
)

// LockState tracks consecutive failed observatory logins within one browser session.
type LockState struct {
	Attempts    int        `json:"attempts"`
	LockedUntil *time.Time `json:"lockedUntil"`
}

// AuthState is the observatory session record.
type AuthState struct {
	IsAuthenticated bool       `json:"isAuthenticated"`
	Token           string     `json:"token"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

// LockStatus is the answer to "may this browser session attempt a login right now".
type LockStatus struct {
	Locked           bool  `json:"locked"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

// AttemptResult is returned after recording a failed login.
type AttemptResult struct {
	Locked            bool `json:"locked"`
	AttemptsRemaining int  `json:"attempts_remaining"`
}

// LoginResult mirrors what the login form renders. RetryAfter is set when the
// failure was caused by a lockout.
type LoginResult struct {
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	RetryAfter time.Duration `json:"-"`
}

// GuardStatus is a read-only snapshot for the login view.
type GuardStatus struct {
	Locked           bool       `json:"locked"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	AttemptsUsed     int        `json:"attempts_used"`
	MaxAttempts      int        `json:"max_attempts"`
	Authenticated    bool       `json:"authenticated"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}
