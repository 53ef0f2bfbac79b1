package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/propmarket/server/internal/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.HTTPClientConfig{MaxIdleConnsPerHost: 7, ResponseTimeout: 30 * time.Second}

	c := New(cfg)
	assert.Equal(t, 30*time.Second, c.Timeout)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 7, tr.MaxIdleConnsPerHost)

	assert.Equal(t, 15*time.Second, New(cfg, WithTimeout(15*time.Second)).Timeout)
	assert.Equal(t, 30*time.Second, New(cfg, WithTimeout(0)).Timeout)
}
