package app

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestKeyNamespace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	testCases := []struct {
		cmd  redis.Cmder
		want string
	}{
		{cmd: redis.NewStringCmd(ctx, "get", "cache:route:mumbai|pune"), want: "cache:route"},
		{cmd: redis.NewStringCmd(ctx, "get", "cache:driver:d-1"), want: "cache:driver"},
		{cmd: redis.NewStringCmd(ctx, "get", "idempotency:admin-1:PUT:/v1/admin/drivers/d-1/verify:k"), want: "idempotency"},
		{cmd: redis.NewStringCmd(ctx, "get", "plain"), want: "redis"},
		{cmd: redis.NewStatusCmd(ctx, "ping"), want: "redis"},
	}

	for _, tc := range testCases {
		if got := keyNamespace(tc.cmd); got != tc.want {
			t.Errorf("keyNamespace(%v) = %q, want %q", tc.cmd.Args(), got, tc.want)
		}
	}
}
