package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// clearTestDBEnv blanks the TEST_DB_* variables for the test's duration;
// getEnvOrDefault treats empty as unset.
func clearTestDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultTestDBConfig_Defaults(t *testing.T) {
	clearTestDBEnv(t)

	cfg := DefaultTestDBConfig()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "55432", cfg.Port, "default port is the compose test database, not 5432")
	assert.Equal(t, "hirelens", cfg.User)
	assert.Equal(t, "hirelens", cfg.Password)
	assert.Equal(t, "hirelens", cfg.DBName)
}

func TestDefaultTestDBConfig_EnvOverrides(t *testing.T) {
	clearTestDBEnv(t)
	t.Setenv("TEST_DB_HOST", "postgres")
	t.Setenv("TEST_DB_PORT", "5432")
	t.Setenv("TEST_DB_NAME", "hirelens_ci")

	cfg := DefaultTestDBConfig()

	assert.Equal(t, "postgres", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "hirelens_ci", cfg.DBName)
	// Unset variables still fall back.
	assert.Equal(t, "hirelens", cfg.User)
	assert.Equal(t, "hirelens", cfg.Password)
}
