package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("unexpected EOF")))
	assert.True(t, isConnectionError(errors.New("read tcp: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE Operation against a key")))
}

func TestSleepCtx(t *testing.T) {
	t.Parallel()

	assert.True(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepCtx(ctx, time.Hour))
}

func newTestValkeyCache(client valkey.Client, ttl time.Duration) *ValkeyCache {
	vc := NewValkeyCacheFromClient(client, ValkeyOptions{TTL: ttl, KeyPrefix: "test:"})
	vc.retryDelay = time.Millisecond
	vc.closeGrace = 0
	vc.dial = func(context.Context) (valkey.Client, error) {
		return nil, errors.New("dial disabled")
	}
	return vc
}

func TestValkeyCache_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []valkey.ValkeyResult
		wantVal string
		wantOK  bool
	}{
		{
			name:    "hit",
			results: []valkey.ValkeyResult{mock.Result(mock.ValkeyString("hello"))},
			wantVal: "hello",
			wantOK:  true,
		},
		{
			name:    "nil reply is a miss without retry",
			results: []valkey.ValkeyResult{mock.Result(mock.ValkeyNil())},
		},
		{
			name: "error retried then succeeds",
			results: []valkey.ValkeyResult{
				mock.ErrorResult(errors.New("LOADING dataset")),
				mock.Result(mock.ValkeyString("hello")),
			},
			wantVal: "hello",
			wantOK:  true,
		},
		{
			name: "persistent error is a miss",
			results: []valkey.ValkeyResult{
				mock.ErrorResult(errors.New("LOADING dataset")),
				mock.ErrorResult(errors.New("LOADING dataset")),
				mock.ErrorResult(errors.New("LOADING dataset")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			client := mock.NewClient(ctrl)
			var prev *gomock.Call
			for _, r := range tt.results {
				call := client.EXPECT().
					Do(gomock.Any(), mock.Match("GET", "test:mykey")).
					Return(r)
				if prev != nil {
					call.After(prev)
				}
				prev = call
			}

			val, ok := newTestValkeyCache(client, time.Hour).Get(context.Background(), "mykey")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantVal, val)
		})
	}
}

func TestValkeyCache_Set(t *testing.T) {
	t.Parallel()

	t.Run("with ttl adds expire", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		client.EXPECT().
			DoMulti(gomock.Any(),
				mock.Match("SET", "test:mykey", "myvalue"),
				mock.Match("EXPIRE", "test:mykey", "3600")).
			Return([]valkey.ValkeyResult{
				mock.Result(mock.ValkeyString("OK")),
				mock.Result(mock.ValkeyInt64(1)),
			})

		require.NoError(t, newTestValkeyCache(client, time.Hour).Set(context.Background(), "mykey", "myvalue"))
	})

	t.Run("without ttl sets only", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		client.EXPECT().
			DoMulti(gomock.Any(), mock.Match("SET", "test:mykey", "myvalue")).
			Return([]valkey.ValkeyResult{mock.Result(mock.ValkeyString("OK"))})

		require.NoError(t, newTestValkeyCache(client, 0).Set(context.Background(), "mykey", "myvalue"))
	})

	t.Run("error after retries", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mock.NewClient(ctrl)
		client.EXPECT().
			DoMulti(gomock.Any(), mock.Match("SET", "test:mykey", "myvalue")).
			Return([]valkey.ValkeyResult{mock.ErrorResult(errors.New("READONLY replica"))}).
			Times(valkeyRetries)

		err := newTestValkeyCache(client, 0).Set(context.Background(), "mykey", "myvalue")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "READONLY")
	})
}

func TestValkeyCache_ReconnectsOnConnectionError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	broken := mock.NewClient(ctrl)
	fresh := mock.NewClient(ctrl)

	broken.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "test:mykey")).
		Return(mock.ErrorResult(errors.New("dial tcp: connection refused")))
	broken.EXPECT().Close()
	fresh.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "test:mykey")).
		Return(mock.Result(mock.ValkeyString("hello")))

	vc := newTestValkeyCache(broken, time.Hour)
	dials := 0
	vc.dial = func(context.Context) (valkey.Client, error) {
		dials++
		return fresh, nil
	}

	val, ok := vc.Get(context.Background(), "mykey")
	assert.True(t, ok)
	assert.Equal(t, "hello", val)
	assert.Equal(t, 1, dials)
}

func TestValkeyCache_FailedReconnectKeepsClient(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	first := client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "test:mykey")).
		Return(mock.ErrorResult(errors.New("unexpected EOF")))
	client.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "test:mykey")).
		Return(mock.Result(mock.ValkeyString("hello"))).
		After(first)

	val, ok := newTestValkeyCache(client, time.Hour).Get(context.Background(), "mykey")
	assert.True(t, ok)
	assert.Equal(t, "hello", val)
}
