package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symposium/pkg/requestcontext"
)

func TestClientIPFromRequest(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.50"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		trusted TrustedProxies
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "ipv4 remote addr", remote: "192.0.2.10:5123", want: "192.0.2.10"},
		{name: "ipv6 remote addr", remote: "[::1]:5123", want: "::1"},
		{name: "forwarded header ignored without trusted proxies", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "198.51.100.4:80", want: "198.51.100.4"},
		{name: "forwarded header ignored from untrusted peer", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "198.51.100.4:80", want: "198.51.100.4"},
		{name: "trusted peer takes rightmost untrusted hop", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7, 10.0.0.9"}, remote: "10.0.0.1:80", want: "203.0.113.7"},
		{name: "single address trusted proxy", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.8"}, remote: "192.0.2.50:80", want: "203.0.113.8"},
		{name: "malformed hop stops the walk", trusted: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.7, bogus"}, remote: "10.0.0.1:80", want: "10.0.0.1"},
		{name: "real ip header from trusted peer", trusted: trusted, headers: map[string]string{"X-Real-IP": " 198.51.100.2 "}, remote: "10.0.0.1:80", want: "198.51.100.2"},
		{name: "real ip header ignored from untrusted peer", trusted: trusted, headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "198.51.100.4:80", want: "198.51.100.4"},
		{name: "empty remote addr", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(r, tt.trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{" 10.1.2.3/8 ", "", "::1"})
	require.NoError(t, err)
	assert.True(t, got.Contains("10.200.0.1"))
	assert.True(t, got.Contains("::1"))
	assert.False(t, got.Contains("11.0.0.1"))
	assert.False(t, got.Contains("not-an-ip"))

	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}

func TestClientMetadataMiddleware(t *testing.T) {
	var gotIP, gotUA string
	h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = requestcontext.ClientIP(r.Context())
		gotUA = requestcontext.UserAgent(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	r.Header.Set("User-Agent", "curl/8.0")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.1", gotIP)
	assert.Equal(t, "curl/8.0", gotUA)
}

func TestParseUserAgent(t *testing.T) {
	c := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, "Chrome", c.Browser)
	assert.False(t, c.Mobile)

	assert.Equal(t, Client{}, ParseUserAgent(""))
}
