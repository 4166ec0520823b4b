package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "list accounts",
				Cause:   errors.New("connection refused"),
			},
			want: "list accounts: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Errorf("Wrap(nil) should return nil")
	}
}

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	base := Permission("no delete")
	wrapped := fmt.Errorf("delete account: %w", base)

	if !IsPermission(wrapped) {
		t.Errorf("IsPermission should see through fmt wrapping")
	}
	if IsAuth(wrapped) || IsTransport(wrapped) {
		t.Errorf("unexpected code match")
	}
	if GetCode(wrapped) != ErrCodePermission {
		t.Errorf("GetCode = %v", GetCode(wrapped))
	}
	if GetCode(errors.New("plain")) != "" {
		t.Errorf("GetCode on plain error should be empty")
	}
	if GetField(ValidationField("amount", "Amount is required.")) != "amount" {
		t.Errorf("GetField should return field")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error is hidden", err: errors.New("dial tcp 10.0.0.1:443: i/o timeout"), want: MsgUnreachable},
		{name: "transport detail is hidden", err: Transport(errors.New("EOF"), "decode body"), want: MsgUnreachable},
		{name: "server message passes through", err: Rejected(422, "Account code already exists"), want: "Account code already exists"},
		{name: "server rejection without message", err: Rejected(400, ""), want: MsgRejected},
		{name: "validation", err: ValidationField("name", "Name is required."), want: "Name is required."},
		{name: "auth", err: Auth("missing token"), want: MsgSessionExpired},
		{name: "permission default", err: Permission(""), want: MsgNoPermission},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: MsgTimeout},
		{name: "not found", err: NotFound("account 9"), want: MsgNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
