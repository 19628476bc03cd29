package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type seen struct {
	method string
	path   string
	query  url.Values
	body   string
}

func stubBackend(t *testing.T, last *seen) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*last = seen{method: r.Method, path: r.URL.Path, query: r.URL.Query(), body: string(b)}
	}
	mux.HandleFunc("/shodan/host/8.8.8.8", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_ = json.NewEncoder(w).Encode(map[string]string{"ip_str": "8.8.8.8"})
	})
	mux.HandleFunc("/shodan/alert", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"id":"A1"}`)
			return
		}
		// streaming firehose
		for i := 0; i < 5; i++ {
			_, _ = fmt.Fprintf(w, "{\"n\":%d}\n", i)
			w.(http.Flusher).Flush()
		}
	})
	mux.HandleFunc("/notifier", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	mux.HandleFunc("/account/profile", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Invalid API key"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCLI_HostPrintsStatusAndBody(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "KEY")

	out, err := run(t, "--base-url", srv.URL, "host", "8.8.8.8", "--minify")
	if err != nil {
		t.Fatalf("host cmd failed: %v", err)
	}
	if !strings.HasPrefix(out, "Status: 200 OK\nBody:\n") || !strings.Contains(out, `"ip_str":"8.8.8.8"`) {
		t.Fatalf("unexpected output %q", out)
	}
	if last.query.Get("key") != "KEY" || last.query.Get("minify") != "true" {
		t.Fatalf("unexpected query %v", last.query)
	}
}

func TestCLI_AlertCreateSendsJSON(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "KEY")

	if _, err := run(t, "--base-url", srv.URL, "alert", "create", "DNS", "8.8.8.8, 1.1.1.1", "--expires", "60"); err != nil {
		t.Fatalf("alert create failed: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(last.body), &body); err != nil {
		t.Fatalf("body is not JSON: %q", last.body)
	}
	if body["name"] != "DNS" || body["expires"] != float64(60) {
		t.Fatalf("unexpected body %v", body)
	}
	ips := body["filters"].(map[string]any)["ip"].([]any)
	if len(ips) != 2 || ips[1] != "1.1.1.1" {
		t.Fatalf("unexpected ips %v", ips)
	}
}

func TestCLI_NotifierCreateForm(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "KEY")

	_, err := run(t, "--base-url", srv.URL, "notifier", "create", "--provider", "email", "--description", "ops", "--arg", "to=ops@example.com")
	if err != nil {
		t.Fatalf("notifier create failed: %v", err)
	}
	form, _ := url.ParseQuery(last.body)
	if last.method != http.MethodPost || form.Get("provider") != "email" || form.Get("to") != "ops@example.com" {
		t.Fatalf("unexpected request %s %v", last.method, form)
	}
}

func TestCLI_NonOKStatusFails(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "BAD")

	out, err := run(t, "--base-url", srv.URL, "profile")
	if err == nil {
		t.Fatalf("expected error for 401")
	}
	if !strings.Contains(out, "Status: 401") || !strings.Contains(out, "Invalid API key") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCLI_KeyFromFile(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "")
	p := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(p, []byte("FILEKEY\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "--base-url", srv.URL, "--api-key-file", p, "host", "8.8.8.8"); err != nil {
		t.Fatalf("host cmd failed: %v", err)
	}
	if last.query.Get("key") != "FILEKEY" {
		t.Fatalf("key = %q", last.query.Get("key"))
	}

	if _, err := run(t, "--base-url", srv.URL, "--api-key-file", p+".missing", "host", "8.8.8.8"); err == nil {
		t.Fatalf("expected error for missing key file")
	}
}

func TestCLI_StreamAlertsLimit(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "KEY")

	out, err := run(t, "--stream-url", srv.URL, "stream", "alerts", "--limit", "2")
	if err != nil {
		t.Fatalf("stream cmd failed: %v", err)
	}
	if out != "{\"n\":0}\n{\"n\":1}\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCLI_Endpoints(t *testing.T) {
	out, err := run(t, "endpoints")
	if err != nil {
		t.Fatalf("endpoints failed: %v", err)
	}
	if got := strings.Count(out, "\n"); got != 42 {
		t.Fatalf("expected header plus 41 rows, got %d lines", got)
	}

	out, err = run(t, "endpoints", "host_count")
	if err != nil {
		t.Fatalf("endpoints host_count failed: %v", err)
	}
	if !strings.Contains(out, "/shodan/host/count") || !strings.Contains(out, "query*") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "endpoints", "nope"); err == nil {
		t.Fatalf("expected error for unknown endpoint")
	}
}

func TestCLI_GenericDebugEnvRaisesLogLevel(t *testing.T) {
	t.Setenv("SHODAN_DEBUG", "")
	t.Setenv("DEBUG", "true")
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if _, err := run(t, "endpoints", "my_ip"); err != nil {
		t.Fatalf("endpoints failed: %v", err)
	}
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Fatalf("global level = %v, want debug", got)
	}
}

func TestCLI_AlertCreateWithoutIPsFails(t *testing.T) {
	var last seen
	srv := stubBackend(t, &last)
	t.Setenv("SHODAN_API_KEY", "KEY")

	out, err := run(t, "--base-url", srv.URL, "alert", "create", "DNS", " , ")
	if err == nil {
		t.Fatalf("expected error for empty ip list")
	}
	if !strings.HasPrefix(out, "Error: ") || last.method != "" {
		t.Fatalf("request should not be sent: out=%q last=%+v", out, last)
	}
}
