package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	fetch "github.com/frankli0324/go-fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	// the payload only follows the response head, so the head goes out first
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)
		assert.NoError(t, rc.EnableFullDuplex())
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Accept", r.Header.Get("Accept"))
		w.Header().Set("X-Length", strconv.FormatInt(r.ContentLength, 10))
		w.WriteHeader(http.StatusOK)
		assert.NoError(t, rc.Flush())
		io.Copy(w, r.Body)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "42", Path: "/"})
		http.Redirect(w, r, "/whoami", http.StatusFound)
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("sid")
		if err != nil {
			http.Error(w, "anonymous", http.StatusUnauthorized)
			return
		}
		io.WriteString(w, "sid="+c.Value)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	color.NoColor = true
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGet(t *testing.T) {
	srv := newServer(t)
	out, err := execute(t, nil, srv.URL+"/echo")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, nil, "-i", "-H", "Accept: text/plain", srv.URL+"/echo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\n"), out)
	assert.Contains(t, out, "X-Method: GET\n")
	assert.Contains(t, out, "X-Accept: text/plain\n")
}

func TestPostData(t *testing.T) {
	srv := newServer(t)
	out, err := execute(t, nil, "-i", "-d", "hello", srv.URL+"/echo")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Method: POST\n")
	assert.Contains(t, out, "X-Length: 5\n")
	assert.True(t, strings.HasSuffix(out, "\n\nhello"), out)

	out, err = execute(t, nil, "-X", "PUT", "-d", "hello", srv.URL+"/echo")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestDataFromFile(t *testing.T) {
	srv := newServer(t)
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	out, err := execute(t, nil, "-i", "-d", "@"+path, srv.URL+"/echo")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Length: 9\n")
	assert.True(t, strings.HasSuffix(out, "\n\nfrom file"), out)

	_, err = execute(t, nil, "-d", "@"+filepath.Join(t.TempDir(), "missing"), srv.URL+"/echo")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDataFromStdin(t *testing.T) {
	srv := newServer(t)
	// no size known, so the payload goes out chunked
	stdin := io.MultiReader(strings.NewReader("from "), strings.NewReader("stdin"))
	out, err := execute(t, stdin, "-i", "-d", "@-", srv.URL+"/echo")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Length: -1\n")
	assert.True(t, strings.HasSuffix(out, "\n\nfrom stdin"), out)
}

func TestCookiesFollowRedirect(t *testing.T) {
	srv := newServer(t)
	out, err := execute(t, nil, srv.URL+"/login")
	require.NoError(t, err)
	assert.Equal(t, "sid=42", out)
}

func TestMaxRedirects(t *testing.T) {
	srv := newServer(t)
	_, err := execute(t, nil, "--max-redirects", "0", srv.URL+"/login")
	assert.ErrorIs(t, err, fetch.ErrTooManyRedirects)
}

func TestConfigProfile(t *testing.T) {
	srv := newServer(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	profile := "max_redirects: 0\nheaders:\n  - Accept: application/json\n"
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o600))

	out, err := execute(t, nil, "--config", path, "-i", srv.URL+"/echo")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Accept: application/json\n")

	_, err = execute(t, nil, "--config", path, srv.URL+"/login")
	assert.ErrorIs(t, err, fetch.ErrTooManyRedirects)

	// the flag beats the profile
	out, err = execute(t, nil, "--config", path, "--max-redirects", "1", srv.URL+"/login")
	require.NoError(t, err)
	assert.Equal(t, "sid=42", out)
}

func TestInvalidInvocations(t *testing.T) {
	srv := newServer(t)
	cases := map[string][]string{
		"no url":         {},
		"two urls":       {srv.URL, srv.URL},
		"bad header":     {"-H", "no-colon", srv.URL},
		"missing config": {"--config", filepath.Join(t.TempDir(), "nope.yaml"), srv.URL},
		"unknown scheme": {"ftp://example.com/"},
	}
	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, nil, args...)
			assert.Error(t, err)
		})
	}
}
