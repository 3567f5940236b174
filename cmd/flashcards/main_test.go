package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

const library = `{"subjects":[
  {"name":"Math","topics":[
    {"name":"Algebra","cards":[{"question":"2x=4","answer":"x=2","type":"identification"}]},
    {"name":"Geometry","cards":[{"question":"Triangle angles","answer":"180","type":"identification"}]}
  ]},
  {"name":"History","topics":[
    {"name":"Rome","cards":[{"question":"Founded?","answer":"753 BC","type":"identification"}]}
  ]}
]}`

// execute runs the root command with an empty config directory.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", t.TempDir(), "--log-level", "error"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	return doc
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", library)

	out, err := execute(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good.json: ok, 2 subjects, 3 topics, 3 cards")

	bad := writeFile(t, dir, "bad.json", `{"subjects":[{"name":"Math"},{"name":"Math"}]}`)
	broken := writeFile(t, dir, "broken.json", `{"subjects":`)

	out, err = execute(t, "", "validate", good, bad, broken)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "good.json: ok")
	assert.Contains(t, out, `duplicate subject "Math"`)
	assert.Contains(t, out, "broken.json:")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "library.json", library)

	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{name: "collection", files: []string{"flashcards.json"}},
		{name: "subject", args: []string{"--subject", "Math"}, files: []string{"Math.json"}},
		{name: "topic", args: []string{"-s", "Math", "-t", "Algebra"}, files: []string{"Math_Algebra.json"}},
		{name: "split", args: []string{"--split"}, files: []string{"Math.json", "History.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()

			out, err := execute(t, "", append([]string{"export", src, "-o", outDir}, tt.args...)...)
			require.NoError(t, err)

			for _, f := range tt.files {
				assert.Contains(t, out, "wrote "+filepath.Join(outDir, f))
				assert.FileExists(t, filepath.Join(outDir, f))
			}
		})
	}

	t.Run("topic needs subject", func(t *testing.T) {
		_, err := execute(t, "", "export", src, "--topic", "Algebra")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, err := execute(t, "", "export", src, "--subject", "Art", "-o", t.TempDir())
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestImport(t *testing.T) {
	mathTopics := func(t *testing.T, path string) []any {
		t.Helper()

		subjects := readJSON(t, path)["subjects"].([]any)
		math := subjects[0].(map[string]any)
		require.Equal(t, "Math", math["name"])

		return math["topics"].([]any)
	}

	incoming := `{"name":"Math","topics":[{"name":"Calculus","cards":[{"question":"d/dx x^2","answer":"2x"}]}]}`

	t.Run("subject merge confirmed at prompt", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)
		in := writeFile(t, dir, "math.json", incoming)

		out, err := execute(t, "y\n", "import", base, in, "--level", "subject")
		require.NoError(t, err)
		assert.Contains(t, out, `Subject "Math" already exists. Merge topics? [y/N]`)
		assert.Contains(t, out, "subject import merged")
		assert.Contains(t, out, "2 subjects, 4 topics, 4 cards")
		assert.Len(t, mathTopics(t, base), 3)
	})

	t.Run("subject merge declined leaves base", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)
		in := writeFile(t, dir, "math.json", incoming)

		out, err := execute(t, "n\n", "import", base, in, "--level", "subject")
		require.NoError(t, err)
		assert.Contains(t, out, "subject import declined")
		assert.NotContains(t, out, "wrote")

		raw, err := os.ReadFile(base)
		require.NoError(t, err)
		assert.Equal(t, library, string(raw))
	})

	t.Run("topic replace with yes", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)
		in := writeFile(t, dir, "algebra.json", `{"name":"Algebra","cards":[{"question":"x+1=2","answer":"x=1"},{"question":"x-1=0","answer":"x=1"}]}`)

		out, err := execute(t, "", "import", base, in, "--level", "topic", "--subject", "Math", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "topic import replaced")
		assert.NotContains(t, out, "[y/N]")

		algebra := mathTopics(t, base)[0].(map[string]any)
		assert.Len(t, algebra["cards"], 2)
	})

	t.Run("collection replaces", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)
		in := writeFile(t, dir, "other.json", `{"subjects":[{"name":"Art","topics":[]}]}`)

		out, err := execute(t, "", "import", base, in)
		require.NoError(t, err)
		assert.Contains(t, out, "collection import replaced")
		assert.Contains(t, out, "1 subjects, 0 topics, 0 cards")
	})

	t.Run("topic level needs subject", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)

		_, err := execute(t, "", "import", base, base, "--level", "topic")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("bad level", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "library.json", library)

		_, err := execute(t, "", "import", base, base, "--level", "deck")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	sheet := writeFile(t, dir, "vocab.csv", "question,answer,type\nHola,Hello,identification\n,missing,\nColors,\"red, blue\",enumeration\n")
	outDir := t.TempDir()

	out, err := execute(t, "", "convert", sheet, "--subject", "Spanish", "--topic", "Basics", "-o", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 cards imported, 1 skipped of 3 rows")

	doc := readJSON(t, filepath.Join(outDir, "Spanish_Basics.json"))
	assert.Equal(t, "Basics", doc["name"])
	assert.Len(t, doc["cards"], 2)

	_, err = execute(t, "", "convert", sheet, "--subject", "Spanish")
	require.Error(t, err, "topic is required")
}

func TestQuiz_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "library.json", library)

	_, err := execute(t, "", "quiz", src, "--subject", "Art")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = execute(t, "", "quiz", src, "--subject", "Math", "--topic", "Calculus")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = execute(t, "", "quiz", filepath.Join(dir, "missing.json"), "--subject", "Math")
	require.Error(t, err)
}

func TestServe_SeedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	seed := writeFile(t, dir, "seed.json", library)

	t.Setenv("APP_LIBRARY_SEED_FILE", seed)
	t.Setenv("APP_LIBRARY_EXPORT_ON_SHUTDOWN", "true")

	e := &env{}
	root := newRootCmd()
	root.SetErr(io.Discard)
	require.NoError(t, root.ParseFlags([]string{"--config-dir", t.TempDir(), "--log-level", "error"}))
	require.NoError(t, e.load(root))

	ctx := t.Context()

	svc, err := newService(ctx, e)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	svc.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/collection", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subjects":2`)

	w = httptest.NewRecorder()
	svc.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/subjects/Math/topics/Geometry", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	svc.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, svc.close(ctx))

	math := readJSON(t, seed)["subjects"].([]any)[0].(map[string]any)
	assert.Len(t, math["topics"], 1)
}

func TestServe_MissingSeed(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	t.Setenv("APP_LIBRARY_SEED_FILE", missing)

	e := &env{}
	root := newRootCmd()
	root.SetErr(io.Discard)
	require.NoError(t, root.ParseFlags([]string{"--config-dir", t.TempDir(), "--log-level", "error"}))
	require.NoError(t, e.load(root))

	_, err := newService(t.Context(), e)
	require.Error(t, err, "seed must exist without export_on_shutdown")

	t.Setenv("APP_LIBRARY_EXPORT_ON_SHUTDOWN", "true")
	require.NoError(t, e.load(root))

	svc, err := newService(t.Context(), e)
	require.NoError(t, err)
	require.NoError(t, svc.close(t.Context()))
	assert.FileExists(t, missing)
}
