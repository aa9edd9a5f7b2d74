package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderRefreshSuccess(t *testing.T) {
	fetch := func(ctx context.Context) ([]string, error) {
		return []string{"alpha", "beta"}, nil
	}
	l := NewLoader(context.Background(), fetch, false)

	require.NoError(t, l.Refresh(context.Background()))

	assert.Equal(t, []string{"alpha", "beta"}, l.Data())
	assert.Empty(t, l.Err())
	assert.False(t, l.Loading())
}

func TestLoaderRefreshFailureClearsData(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"alpha"}, nil
		}
		return nil, errors.New("network down")
	}
	l := NewLoader(context.Background(), fetch, true)
	require.Equal(t, []string{"alpha"}, l.Data())

	err := l.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{}, l.Data())
	assert.Equal(t, "network down", l.Err())
	assert.False(t, l.Loading())
}

func TestLoaderRefreshNilResultBecomesEmptySlice(t *testing.T) {
	fetch := func(ctx context.Context) ([]int, error) {
		return nil, nil
	}
	l := NewLoader(context.Background(), fetch, false)

	require.NoError(t, l.Refresh(context.Background()))
	assert.NotNil(t, l.Data())
	assert.Empty(t, l.Data())
}

func TestLoaderCancelledContextDoesNotCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context) ([]string, error) {
		cancel()
		return []string{"stale"}, nil
	}
	l := NewLoader(context.Background(), fetch, false)

	err := l.Refresh(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, l.Data())
}
