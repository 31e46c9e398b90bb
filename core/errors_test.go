package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientError_Formatting(t *testing.T) {
	err := &ClientError{
		Op:      "api.auth.Login",
		Kind:    ErrorKindValidation,
		Message: "Invalid credentials",
	}
	assert.Equal(t, "api.auth.Login: validation: Invalid credentials", err.Error())

	wrapped := &ClientError{
		Op:   "session.Bootstrap",
		Kind: ErrorKindConnectivity,
		Err:  ErrConnectionFailed,
	}
	assert.Contains(t, wrapped.Error(), "connection failed")
}

func TestClientError_Unwrapping(t *testing.T) {
	inner := fmt.Errorf("%w: dial tcp refused", ErrConnectionFailed)
	err := &ClientError{Op: "op", Kind: ErrorKindConnectivity, Err: inner}

	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.False(t, errors.Is(err, ErrTimeout))

	var ce *ClientError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorKindConnectivity, ce.Kind)
}

func TestIsAuthRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sentinel", err: ErrAuthRejected, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("profile: %w", ErrAuthRejected), want: true},
		{
			name: "auth kind without sentinel",
			err:  &ClientError{Op: "op", Kind: ErrorKindAuth, Status: 403},
			want: true,
		},
		{
			name: "connectivity is not auth",
			err:  &ClientError{Op: "op", Kind: ErrorKindConnectivity, Err: ErrConnectionFailed},
			want: false,
		},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthRejected(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrConnectionFailed))
	assert.True(t, IsRetryable(ErrTimeout))
	assert.True(t, IsRetryable(ErrRateLimited))
	assert.False(t, IsRetryable(ErrAuthRejected))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "timeout", err: ErrTimeout, want: "The request timed out. Please try again."},
		{
			name: "wrapped connectivity",
			err:  &ClientError{Op: "op", Kind: ErrorKindConnectivity, Err: ErrConnectionFailed},
			want: "Could not reach the server. Check your connection.",
		},
		{name: "rate limited", err: ErrRateLimited, want: "Too many requests. Please slow down."},
		{name: "auth", err: ErrAuthRejected, want: "Session expired. Please login again."},
		{
			name: "server message passes through verbatim",
			err:  &ClientError{Op: "op", Kind: ErrorKindValidation, Message: "Email already registered"},
			want: "Email already registered",
		},
		{name: "unknown", err: errors.New("boom"), want: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	for _, path := range []string{PathHome, PathLogin, PathRegister} {
		assert.True(t, IsPublicPath(path), path)
	}
	for _, path := range []string{"/orders", "/cart", PathAdminDashboard, PathProviderDashboard} {
		assert.False(t, IsPublicPath(path), path)
	}
}
