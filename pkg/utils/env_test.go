package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_ON", " true ")
	t.Setenv("FLAG_BAD", "sometimes")

	assert.True(t, GetEnvBool("FLAG_ON", false))
	assert.True(t, GetEnvBool("FLAG_BAD", true))
	assert.False(t, GetEnvBool("FLAG_UNSET_FOR_TEST", false))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TIMEOUT_OK", "5s")
	t.Setenv("TIMEOUT_NEGATIVE", "-1s")
	t.Setenv("TIMEOUT_BAD", "soon")

	assert.Equal(t, 5*time.Second, GetEnvDuration("TIMEOUT_OK", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TIMEOUT_NEGATIVE", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TIMEOUT_BAD", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TIMEOUT_UNSET_FOR_TEST", time.Minute))
}

func TestOTelServiceName_Default(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	assert.Equal(t, "consent-intake", OTelServiceName())

	t.Setenv("OTEL_SERVICE_NAME", "intake-staging")
	assert.Equal(t, "intake-staging", OTelServiceName())
}
