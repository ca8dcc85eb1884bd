package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	v := viper.New()
	v.Set("SUPABASE_JWT_SECRET", "secret")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "vendor-directory", cfg.App.Name)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TaxonomyTTL)
	assert.Equal(t, "en", cfg.I18n.DefaultLocale)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_LeeVariables(t *testing.T) {
	v := viper.New()
	v.Set("SUPABASE_URL", "https://abc.supabase.co")
	v.Set("SUPABASE_ANON_KEY", "anon")
	v.Set("HTTP_PORT", "9090")
	v.Set("CACHE_TAXONOMY_TTL", "30s")
	v.Set("I18N_DEFAULT_LOCALE", "NL")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.TaxonomyTTL)
	assert.Equal(t, "nl", cfg.I18n.DefaultLocale)
	assert.Equal(t, "", cfg.Supabase.JWTSecret)
}

func TestFromViper_SinCredencialesDeSupabase(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_TTLInvalido(t *testing.T) {
	v := viper.New()
	v.Set("SUPABASE_JWT_SECRET", "secret")
	v.Set("CACHE_TAXONOMY_TTL", "diez minutos")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=require", c.ConnectionString())

	c.DatabaseURL = "postgresql://direct"
	assert.Equal(t, "postgresql://direct", c.ConnectionString())
}
