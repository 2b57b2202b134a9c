package logx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	InitWithWriter(false, &buf)

	handler := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	r := httptest.NewRequest(http.MethodGet, "/ws/board?token=secret", nil)
	r.RemoteAddr = "203.0.113.57:4312"
	handler.ServeHTTP(httptest.NewRecorder(), r)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())

	assert.Equal(t, "203.0.113.0", line["remote_ip"])
	assert.Equal(t, float64(http.StatusOK), line["status"], "implicit WriteHeader is logged as 200")
	assert.Equal(t, "/ws/board", line["request_path"])
	assert.NotContains(t, buf.String(), "secret")
}
