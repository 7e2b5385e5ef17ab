package auth

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveStore knows a single principal with id 1.
type liveStore struct{}

func (liveStore) Create(context.Context, string, string) (*Principal, error) { return nil, ErrStoreUnavailable }
func (liveStore) Verify(context.Context, string, string) (*Principal, error) { return nil, ErrInvalidCredentials }
func (liveStore) Exists(_ context.Context, id uint64) (bool, error) { return id == 1, nil }
func (liveStore) Delete(context.Context, uint64) error { return nil }

// fixedSessions resolves "known" to a session of principal 1.
type fixedSessions struct{}

func (fixedSessions) Establish(context.Context, Principal) (*Session, error) {
	return nil, ErrSessionUnavailable
}

func (fixedSessions) Resolve(_ context.Context, token string) (*Session, error) {
	if token != "known" {
		return nil, nil //nolint:nilnil
	}

	return &Session{Token: token, Principal: Principal{ID: 1, Username: "alice"}}, nil
}

func (fixedSessions) Invalidate(context.Context, string) error { return nil }

func TestIdentifyIsCountedApartFromGuard(t *testing.T) {
	ctx := context.Background()
	flow := NewFlow(liveStore{}, fixedSessions{})

	guardAllow := testutil.ToFloat64(authEvents.WithLabelValues(opGuard, outcomeAllow))
	guardDeny := testutil.ToFloat64(authEvents.WithLabelValues(opGuard, outcomeDeny))
	identifyAllow := testutil.ToFloat64(authEvents.WithLabelValues(opIdentify, outcomeAllow))
	identifyDeny := testutil.ToFloat64(authEvents.WithLabelValues(opIdentify, outcomeDeny))

	sess := flow.Identify(ctx, "known")
	require.NotNil(t, sess)
	assert.Equal(t, "alice", sess.Principal.Username)

	assert.Nil(t, flow.Identify(ctx, "stale"))
	assert.Nil(t, flow.Identify(ctx, ""))

	assert.InDelta(t, guardAllow, testutil.ToFloat64(authEvents.WithLabelValues(opGuard, outcomeAllow)), 0)
	assert.InDelta(t, guardDeny, testutil.ToFloat64(authEvents.WithLabelValues(opGuard, outcomeDeny)), 0)
	assert.InDelta(t, identifyAllow+1, testutil.ToFloat64(authEvents.WithLabelValues(opIdentify, outcomeAllow)), 0)
	assert.InDelta(t, identifyDeny+1, testutil.ToFloat64(authEvents.WithLabelValues(opIdentify, outcomeDeny)), 0)

	assert.True(t, flow.Guard(ctx, "known").Allow)
	assert.InDelta(t, guardAllow+1, testutil.ToFloat64(authEvents.WithLabelValues(opGuard, outcomeAllow)), 0)
}
