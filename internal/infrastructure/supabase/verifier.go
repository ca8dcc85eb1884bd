// Package supabase verifica los access tokens emitidos por Supabase Auth.
//
// Con SUPABASE_JWT_SECRET configurado la firma se valida localmente (HS256).
// Sin secreto se consulta GET /auth/v1/user detrás de un circuit breaker: si Supabase
// Auth falla de forma repetida las peticiones autenticadas responden 503 en vez de esperar.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	supa "github.com/supabase-community/supabase-go"

	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/pkg/config"
	"github.com/jhoicas/vendor-directory/pkg/jwt"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

// userFetcher obtiene el usuario dueño de un access token.
type userFetcher interface {
	FetchUser(token string) (entity.Identity, error)
}

// Verifier valida tokens y devuelve la identidad del usuario.
type Verifier struct {
	secret  string
	fetcher userFetcher
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
}

// NewVerifier construye el verificador según la configuración.
func NewVerifier(cfg config.SupabaseConfig, log *logger.Logger) (*Verifier, error) {
	if cfg.JWTSecret != "" {
		return newVerifier(cfg.JWTSecret, nil, defaultBreakerSettings(), log), nil
	}
	client, err := supa.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: crear cliente: %w", err)
	}
	return newVerifier("", &authClient{client: client}, defaultBreakerSettings(), log), nil
}

func newVerifier(secret string, fetcher userFetcher, st gobreaker.Settings, log *logger.Logger) *Verifier {
	v := &Verifier{secret: secret, fetcher: fetcher, log: log.Component("identity")}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		v.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("cambio de estado del circuit breaker")
	}
	// Un token rechazado no es una falla del proveedor.
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, domain.ErrUnauthorized)
	}
	v.breaker = gobreaker.NewCircuitBreaker(st)
	return v
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "supabase-auth",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
	}
}

// Verify valida el token. Devuelve domain.ErrUnauthorized si el token no es válido y
// domain.ErrIdentityUnavailable si no se pudo consultar al proveedor.
func (v *Verifier) Verify(ctx context.Context, token string) (entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return entity.Identity{}, err
	}
	if v.secret != "" {
		userID, email, role, err := jwt.Parse(v.secret, token)
		if err != nil {
			return entity.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
		return entity.Identity{UserID: userID, Email: email, Role: role}, nil
	}

	res, err := v.breaker.Execute(func() (interface{}, error) {
		return v.fetcher.FetchUser(token)
	})
	switch {
	case err == nil:
		return res.(entity.Identity), nil
	case errors.Is(err, domain.ErrUnauthorized):
		return entity.Identity{}, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return entity.Identity{}, fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	default:
		v.log.Error().Err(err).Msg("consulta a Supabase Auth")
		return entity.Identity{}, fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
}

// authClient consulta GET /auth/v1/user con el token del usuario.
type authClient struct {
	client *supa.Client
}

func (a *authClient) FetchUser(token string) (entity.Identity, error) {
	user, err := a.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return entity.Identity{}, classify(err)
	}
	return entity.Identity{UserID: user.ID.String(), Email: user.Email, Role: user.Role}, nil
}

// classify convierte las respuestas 4xx de Supabase Auth en domain.ErrUnauthorized.
// El cliente solo expone el código dentro del mensaje ("response status code 401: ...").
func classify(err error) error {
	var code int
	if _, scanErr := fmt.Sscanf(err.Error(), "response status code %d", &code); scanErr == nil && code >= 400 && code < 500 {
		return fmt.Errorf("%w: supabase auth %d", domain.ErrUnauthorized, code)
	}
	return err
}
