package shodan

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/netscout/shodan/internal/api"
)

// debugTransport logs every request and response at debug level.
//
// Enable it with WithDebugLogging(true), or set SHODAN_DEBUG=true or
// DEBUG=true in the environment. The API key is replaced with REDACTED in
// the logged URL and request dump. Response bodies are logged as received,
// so keep this off outside development.
type debugTransport struct {
	base   http.RoundTripper
	stream bool // response bodies never end; dump headers only
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	secret := req.URL.Query().Get("key")
	target := api.RedactURL(req.URL.String())
	reqID := req.Header.Get(api.RequestIDHeader)

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", target).Str("request_dump", redact(string(reqDump), secret)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Error().Str("error", redact(err.Error(), secret)).Str("request_id", reqID).Str("method", req.Method).Str("url", target).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, !dt.stream); err == nil {
		log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", target).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "REDACTED")
}

// DebugLoggingRequested reports whether SHODAN_DEBUG or DEBUG is "true".
// New installs the debug transport when it does.
func DebugLoggingRequested() bool {
	return os.Getenv("SHODAN_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
