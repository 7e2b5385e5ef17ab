package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-authdemo/authdemo/internal/auth"
)

func TestPipelineEvaluate(t *testing.T) {
	var order []string

	allow := func(name string) auth.GuardFunc {
		return func(context.Context, *auth.Session) auth.Decision {
			order = append(order, name)
			return auth.Allow
		}
	}

	deny := func(name, target string) auth.GuardFunc {
		return func(context.Context, *auth.Session) auth.Decision {
			order = append(order, name)
			return auth.DenyRedirect(target)
		}
	}

	tests := []struct {
		name      string
		pipeline  auth.Pipeline
		want      auth.Decision
		wantOrder []string
	}{
		{
			name:     "empty pipeline allows",
			pipeline: auth.Pipeline{},
			want:     auth.Allow,
		},
		{
			name:      "all allow",
			pipeline:  auth.Pipeline{allow("a"), allow("b")},
			want:      auth.Allow,
			wantOrder: []string{"a", "b"},
		},
		{
			name:      "first deny wins and stops",
			pipeline:  auth.Pipeline{allow("a"), deny("b", "/login"), deny("c", "/")},
			want:      auth.DenyRedirect("/login"),
			wantOrder: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order = nil

			got := tt.pipeline.Evaluate(context.Background(), nil)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestRequireSession(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, auth.DenyRedirect(auth.LoginPath), auth.RequireSession(ctx, nil))
	assert.Equal(t, auth.DenyRedirect(auth.LoginPath), auth.RequireSession(ctx, &auth.Session{}))
	assert.Equal(t, auth.Allow, auth.RequireSession(ctx, &auth.Session{Token: "t"}))
}

func TestRequireLivePrincipal(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	p, err := store.Create(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	guard := auth.RequireLivePrincipal(store)

	assert.Equal(t, auth.Allow, guard(ctx, &auth.Session{Token: "t", Principal: *p}))
	assert.False(t, guard(ctx, &auth.Session{Token: "t", Principal: auth.Principal{ID: p.ID + 1}}).Allow)
	assert.False(t, guard(ctx, nil).Allow)

	down := auth.RequireLivePrincipal(downStore{})
	assert.Equal(t, auth.DenyRedirect(auth.LoginPath), down(ctx, &auth.Session{Token: "t", Principal: *p}))
}
