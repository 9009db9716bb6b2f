package mocks

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockScripter stubs the script commands the rate limiter issues. Any other Scripter method panics.
type MockScripter struct {
	mock.Mock
	redis.Scripter
}

func (m *MockScripter) EvalSha(ctx context.Context, sha1 string, keys []string, args ...any) *redis.Cmd {
	return m.Called(append([]any{ctx, sha1, keys}, args...)...).Get(0).(*redis.Cmd)
}

func (m *MockScripter) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return m.Called(append([]any{ctx, script, keys}, args...)...).Get(0).(*redis.Cmd)
}

// TokenBucketReply builds the [allowed, remaining, retryAfterMs] reply of the token bucket script.
func TokenBucketReply(allowed bool, remaining, retryAfterMs int64) *redis.Cmd {
	var flag int64
	if allowed {
		flag = 1
	}
	return redis.NewCmdResult([]any{flag, remaining, retryAfterMs}, nil)
}
