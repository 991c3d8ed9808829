package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost     = 12
	MinPasswordLen = 12
	MaxPasswordLen = 72 // bcrypt ignores bytes past 72
)

// WeakPasswordError lists why a candidate admin password was rejected.
type WeakPasswordError struct {
	Problems []string
}

func (e *WeakPasswordError) Error() string {
	if len(e.Problems) == 0 {
		return "weak password"
	}
	return "weak password: " + strings.Join(e.Problems, "; ")
}

// Passwords nobody should put in front of an admin page, however hidden.
var commonPasswords = map[string]bool{
	"password":      true,
	"password123":   true,
	"password123!":  true,
	"admin":         true,
	"admin123":      true,
	"administrator": true,
	"12345678":      true,
	"123456789012":  true,
	"qwerty":        true,
	"qwertyuiop":    true,
	"letmein":       true,
	"welcome":       true,
	"changeme":      true,
	"trustno1":      true,
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordLen {
		return "", fmt.Errorf("password longer than %d bytes", MaxPasswordLen)
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// RandomHex returns n cryptographically random bytes, hex-encoded (2n characters).
func RandomHex(n int) (string, error) {
	return RandomHexFrom(rand.Reader, n)
}

// RandomHexFrom is RandomHex reading from r.
func RandomHexFrom(r io.Reader, n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := io.ReadFull(r, bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CheckPasswordStrength reports problems with a candidate admin password.
func CheckPasswordStrength(password string) error {
	problems := make([]string, 0)

	if len(password) < MinPasswordLen {
		problems = append(problems, fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	}
	if len(password) > MaxPasswordLen {
		problems = append(problems, fmt.Sprintf("must be at most %d bytes", MaxPasswordLen))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		problems = append(problems, "must mix at least three of upper case, lower case, digits and symbols")
	}

	if commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "is a commonly used password")
	}

	if len(problems) > 0 {
		return &WeakPasswordError{Problems: problems}
	}
	return nil
}
