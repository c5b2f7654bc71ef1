package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 365*24*time.Hour, cfg.VisitorRetention)
	assert.False(t, cfg.MailEnabled())
	assert.Equal(t, "#ffffff", cfg.Theme().Background)
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_SMTP=1\nTHEME_PRIMARY=#2563eb\n"), 0o600))
	t.Setenv("PORT", "9090")
	t.Cleanup(func() {
		os.Unsetenv("FOLIO_TEST_SMTP")
		os.Unsetenv("THEME_PRIMARY")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "#2563eb", cfg.Theme().Primary)
	assert.Equal(t, "1", os.Getenv("FOLIO_TEST_SMTP"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad duration", key: "SHUTDOWN_TIMEOUT", val: "soon"},
		{name: "negative retention", key: "VISITOR_RETENTION", val: "-1h"},
		{name: "unsafe theme", key: "THEME_MUTED", val: "red;}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestMailSettings(t *testing.T) {
	cfg := Config{SMTPUser: "me@example.com", SMTPPass: "secret"}
	assert.True(t, cfg.MailEnabled())
	assert.Equal(t, "me@example.com", cfg.Recipient())

	cfg.ToEmail = "inbox@example.com"
	assert.Equal(t, "inbox@example.com", cfg.Recipient())
}
