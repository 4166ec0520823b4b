package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "app error", err: apperrors.Rejected(422, "bad"), want: "rejected"},
		{name: "wrapped app error", err: fmt.Errorf("save: %w", apperrors.NotFound("gone")), want: "not_found"},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "concrete type", err: &net.DNSError{Err: "no such host"}, want: "net_dnserror"},
		{name: "plain", err: goerrors.New("boom"), want: "errors_errorstring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
