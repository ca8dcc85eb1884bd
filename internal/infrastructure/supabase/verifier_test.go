package supabase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/pkg/config"
	"github.com/jhoicas/vendor-directory/pkg/jwt"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

type fakeFetcher struct {
	calls    int
	identity entity.Identity
	err      error
}

func (f *fakeFetcher) FetchUser(string) (entity.Identity, error) {
	f.calls++
	return f.identity, f.err
}

func testSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:    "test",
		Timeout: time.Minute,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	}
}

func TestVerify_Local(t *testing.T) {
	v, err := NewVerifier(config.SupabaseConfig{JWTSecret: testSecret}, logger.Nop())
	require.NoError(t, err)

	tok, err := jwt.Generate(testSecret, "user-1", "ana@example.be", entity.RoleAuthenticated, "supabase", 5)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, entity.Identity{UserID: "user-1", Email: "ana@example.be", Role: "authenticated"}, id)

	_, err = v.Verify(context.Background(), "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewVerifier_SinCredenciales(t *testing.T) {
	_, err := NewVerifier(config.SupabaseConfig{}, logger.Nop())
	assert.Error(t, err)
}

func TestVerify_Remoto(t *testing.T) {
	f := &fakeFetcher{identity: entity.Identity{UserID: "user-2", Role: "authenticated"}}
	v := newVerifier("", f, testSettings(), logger.Nop())

	id, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.UserID)
}

func TestVerify_TokenRechazadoNoAbreElBreaker(t *testing.T) {
	f := &fakeFetcher{err: classify(errors.New("response status code 401: invalid JWT"))}
	v := newVerifier("", f, testSettings(), logger.Nop())

	for range 5 {
		_, err := v.Verify(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	assert.Equal(t, 5, f.calls)
	assert.Equal(t, gobreaker.StateClosed, v.breaker.State())
}

func TestVerify_BreakerAbiertoDevuelveNoDisponible(t *testing.T) {
	f := &fakeFetcher{err: errors.New("dial tcp: connection refused")}
	v := newVerifier("", f, testSettings(), logger.Nop())

	for range 3 {
		_, err := v.Verify(context.Background(), "tok")
		assert.ErrorIs(t, err, domain.ErrIdentityUnavailable)
	}
	require.Equal(t, gobreaker.StateOpen, v.breaker.State())

	_, err := v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrIdentityUnavailable)
	assert.Equal(t, 3, f.calls, "con el breaker abierto no se llama al proveedor")
}

func TestVerify_ContextoCancelado(t *testing.T) {
	v := newVerifier(testSecret, nil, testSettings(), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Verify(ctx, "tok")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(errors.New("response status code 403: forbidden")), domain.ErrUnauthorized)
	assert.NotErrorIs(t, classify(errors.New("response status code 500: boom")), domain.ErrUnauthorized)
	assert.NotErrorIs(t, classify(errors.New("EOF")), domain.ErrUnauthorized)
}
