package req

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardroom/internal/pkg/errs"
)

type loginBody struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func newJSONRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid", `{"nickname":"alice","password":"pw"}`, 0},
		{"malformed", `{"nickname":`, errs.ErrInvalidJSONFormat},
		{"unknown field", `{"nickname":"a","role":"ADMIN"}`, errs.ErrInvalidJSONFormat},
		{"trailing data", `{"nickname":"a"}{"nickname":"b"}`, errs.ErrExtraContentInBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst loginBody
			err := BindJSON(httptest.NewRecorder(), newJSONRequest(tt.body), &dst)
			if tt.wantCode == 0 {
				require.Nil(t, err)
				assert.Equal(t, "alice", dst.Nickname)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code)
		})
	}
}

func TestBindJSONRejectsOtherContentTypes(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")

	err := BindJSON(httptest.NewRecorder(), r, &loginBody{})
	require.NotNil(t, err)
	assert.Equal(t, errs.ErrUnsupportedMediaType, err.Code)
}
