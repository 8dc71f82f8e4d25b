package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns captured
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_NoArgsIsSilent(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Empty(t, out, "bare invocation must write zero bytes to stdout")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "snag")
}

func TestGetCommand_EmitsBodyVerbatim(t *testing.T) {
	payload := "h1 { font-size: 2rem; }\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, payload)
	}))
	defer ts.Close()

	out, err := execute(t, "get", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestGetCommand_NonTwoHundredStillEmits(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	}))
	defer ts.Close()

	out, err := execute(t, "get", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "short and stout", out)
}

func TestGetCommand_InvalidTarget(t *testing.T) {
	_, err := execute(t, "get", "   ")
	require.Error(t, err)
}

func TestGetCommand_WritesOutputFile(t *testing.T) {
	payload := "p { line-height: 1.5; }\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, payload)
	}))
	defer ts.Close()

	outFile := filepath.Join(t.TempDir(), "mirror.css")
	_, err := execute(t, "get", "-o", outFile, ts.URL)
	require.NoError(t, err)

	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestGetCommand_FailedFetchPreservesOutputFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := ts.URL
	ts.Close() // connection refused from here on

	outFile := filepath.Join(t.TempDir(), "mirror.css")
	const previous = "previous mirror copy"
	require.NoError(t, os.WriteFile(outFile, []byte(previous), 0o644))

	_, err := execute(t, "get", "-o", outFile, target)
	require.Error(t, err)

	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, previous, string(got), "failed transfer must not clobber the output file")
}

func TestLinksCommand_ListsReferences(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<a href="/one">1</a><a href="https://elsewhere.example/two">2</a>`)
	}))
	defer ts.Close()

	out, err := execute(t, "links", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, ts.URL+"/one")
	assert.Contains(t, out, "https://elsewhere.example/two")
}

func TestDiffCommand_NoDrift(t *testing.T) {
	const body = "body { margin: 0; }\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	defer ts.Close()

	baseline := filepath.Join(t.TempDir(), "baseline.css")
	require.NoError(t, os.WriteFile(baseline, []byte(body), 0o644))

	out, err := execute(t, "diff", baseline, ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "no changes")
}

func TestDiffCommand_DriftExitsNonZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "body { margin: 4px; }\n")
	}))
	defer ts.Close()

	baseline := filepath.Join(t.TempDir(), "baseline.css")
	require.NoError(t, os.WriteFile(baseline, []byte("body { margin: 0; }\n"), 0o644))

	out, err := execute(t, "diff", baseline, ts.URL)
	require.True(t, errors.Is(err, ErrContentDrift), "expected ErrContentDrift, got %v", err)
	assert.NotContains(t, out, "no changes")
}

func TestDiffCommand_MissingBaseline(t *testing.T) {
	_, err := execute(t, "diff", filepath.Join(t.TempDir(), "nope.css"))
	require.Error(t, err)
}
