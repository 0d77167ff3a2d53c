package linkedin

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAPI struct{ API }

func TestPerRequestProvider_CallsFactoryEveryTime(t *testing.T) {
	calls := 0
	p := NewPerRequestProvider(func(context.Context) (API, error) {
		calls++
		return nopAPI{}, nil
	})

	for i := 0; i < 3; i++ {
		_, err := p.Acquire(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestSharedProvider_AuthenticatesOnce(t *testing.T) {
	calls := 0
	p := NewSharedProvider(context.Background(), func(context.Context) (API, error) {
		calls++
		return nopAPI{}, nil
	})

	a, err := p.Acquire(context.Background())
	require.NoError(t, err)
	b, err := p.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, a, b)
}

func TestSharedProvider_RemembersFailure(t *testing.T) {
	p := NewSharedProvider(context.Background(), func(context.Context) (API, error) {
		return nil, errors.New("CHALLENGE")
	})

	api, err := p.Acquire(context.Background())

	assert.Nil(t, api)
	assert.ErrorIs(t, err, ErrClientUnavailable)
	assert.Contains(t, err.Error(), "CHALLENGE")
}

func TestClientFactory_SharesBreaker(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.connectStatus = http.StatusInternalServerError
	factory := NewClientFactory(Config{
		Username:           "u",
		Password:           "p",
		BaseURL:            srv.URL,
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	})

	first, err := factory(context.Background())
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		assert.Error(t, first.AddConnection(context.Background(), "A", ""))
	}

	_, err = factory(context.Background())
	assert.Error(t, err, "open breaker must carry over to new clients")
	assert.Equal(t, 1, f.loginPosts)
	assert.Len(t, f.invites, 2)
}

func TestClientFactory_BreakerStopsRepeatedLogins(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.loginStatus = http.StatusTooManyRequests
	provider := NewPerRequestProvider(NewClientFactory(Config{
		Username:           "u",
		Password:           "p",
		BaseURL:            srv.URL,
		BreakerMaxFailures: 2,
		BreakerTimeout:     time.Minute,
	}))

	for i := 0; i < 10; i++ {
		_, err := provider.Acquire(context.Background())
		assert.Error(t, err)
	}

	assert.Equal(t, 2, f.loginPosts, "open breaker must stop further logins")
}

func TestClientFactory_RejectedLoginsTripBreaker(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.loginResult = "CHALLENGE"
	factory := NewClientFactory(Config{
		Username:           "u",
		Password:           "p",
		BaseURL:            srv.URL,
		BreakerMaxFailures: 1,
		BreakerTimeout:     time.Minute,
	})

	_, err := factory(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	_, err = factory(context.Background())
	require.Error(t, err)
	assert.False(t, errors.As(err, &authErr))
	assert.Equal(t, 1, f.loginPosts)
}
