package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/pkg/logger"
)

type cachedStub struct {
	stubSource
	invalidated int
}

func (s *cachedStub) Invalidate(ctx context.Context) error {
	s.invalidated++
	return nil
}

func TestRefresher_Refresh(t *testing.T) {
	store := NewStore(logger.Nop())
	src := &cachedStub{stubSource: stubSource{companies: []contracts.Company{{Ticker: "A"}, {Ticker: "B"}}}}
	r := NewRefresher(store, src, logger.Nop())

	notified := 0
	r.OnReload(func() { notified++ })

	n, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, notified)
	assert.Equal(t, 0, src.invalidated)

	_, err = r.Refresh(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, src.invalidated)
	assert.Equal(t, 2, notified)
}

func TestRefresher_FailureKeepsList(t *testing.T) {
	store := NewStore(logger.Nop())
	require.NoError(t, store.Replace([]contracts.Company{{Ticker: "A"}}, "seed"))

	r := NewRefresher(store, &stubSource{err: errors.New("boom")}, logger.Nop())
	notified := false
	r.OnReload(func() { notified = true })

	_, err := r.Refresh(context.Background(), true)
	assert.Error(t, err)
	assert.False(t, notified)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "stub", r.Source().Describe())
}
