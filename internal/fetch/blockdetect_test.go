package fetch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func respWithHeader(status int, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Header: h}
}

func TestDetectBlock_Cloudflare(t *testing.T) {
	resp := respWithHeader(403, map[string]string{"cf-ray": "abc123"})
	blocked, kind := DetectBlock(resp, []byte("Access denied"))

	assert.True(t, blocked)
	assert.Equal(t, BlockCloudflare, kind)
}

func TestDetectBlock_CloudflareChallengeBody(t *testing.T) {
	resp := respWithHeader(200, nil)
	blocked, kind := DetectBlock(resp, []byte("<html>Checking your browser before accessing</html>"))

	assert.True(t, blocked)
	assert.Equal(t, BlockCloudflare, kind)
}

func TestDetectBlock_Captcha(t *testing.T) {
	resp := respWithHeader(200, nil)
	blocked, kind := DetectBlock(resp, []byte(`<div class="g-recaptcha"></div>`))

	assert.True(t, blocked)
	assert.Equal(t, BlockCaptcha, kind)
}

func TestDetectBlock_JSShell(t *testing.T) {
	resp := respWithHeader(200, nil)
	body := []byte(`<html><noscript>Please enable JavaScript</noscript></html>`)
	blocked, kind := DetectBlock(resp, body)

	assert.True(t, blocked)
	assert.Equal(t, BlockJSShell, kind)
}

func TestDetectBlock_CleanPage(t *testing.T) {
	resp := respWithHeader(200, nil)
	blocked, kind := DetectBlock(resp, []byte("<html><body>Annual revenue was $2 billion.</body></html>"))

	assert.False(t, blocked)
	assert.Equal(t, BlockNone, kind)
}

func TestDetectBlock_NilResponse(t *testing.T) {
	blocked, _ := DetectBlock(nil, nil)
	assert.False(t, blocked)
}
