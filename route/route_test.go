package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, path string) *Route {
	t.Helper()

	r, err := Parse("get", path)
	require.NoError(t, err)
	return r
}

func TestParse(t *testing.T) {
	r := mustParse(t, "/users/{id}/posts/{slug:[a-z-]+}")

	assert.Equal(t, "get", r.Method())
	assert.Equal(t, "/users/{id}/posts/{slug:[a-z-]+}", r.Path())
	assert.Equal(t, []string{"id", "slug"}, r.ParamNames())
	assert.Empty(t, r.Name())
}

func TestParseErrors(t *testing.T) {
	for _, path := range []string{
		"",
		"users",                // no leading slash
		"/files/{:*}",          // empty name
		"/{}",                  // empty name
		"/{path:*}/more",       // catch-all not last
		"/items/{id:[0-9+}",    // bad pattern
		"/items/{id:(unclose}", // bad pattern
	} {
		_, err := Parse("get", path)
		assert.Error(t, err, "path %q", path)
	}
}

func TestMatchLiteral(t *testing.T) {
	r := mustParse(t, "/about/team")

	params, ok := r.Match("/about/team")
	require.True(t, ok)
	require.NotNil(t, params)
	assert.Len(t, params, 0)

	_, ok = r.Match("/about")
	assert.False(t, ok)
	_, ok = r.Match("/about/team/more")
	assert.False(t, ok)
}

func TestMatchCaseSensitivity(t *testing.T) {
	r := mustParse(t, "/About/Team")

	// insensitive by default
	_, ok := r.Match("/about/team")
	assert.True(t, ok)

	r.Merge(Options{CaseSensitive: Bool(true)})
	assert.True(t, r.CaseSensitive())

	_, ok = r.Match("/about/team")
	assert.False(t, ok)
	_, ok = r.Match("/About/Team")
	assert.True(t, ok)
}

func TestMatchParams(t *testing.T) {
	r := mustParse(t, "/users/{name}/entries/{id}")

	params, ok := r.Match("/users/gopher/entries/42")
	require.True(t, ok)
	assert.Equal(t, Params{
		{Name: "name", Value: "gopher"},
		{Name: "id", Value: "42"},
	}, params)

	id, ok := params.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	_, ok = params.Get("missing")
	assert.False(t, ok)

	// parameters never capture empty segments
	_, ok = r.Match("/users//entries/42")
	assert.False(t, ok)
}

func TestMatchRegex(t *testing.T) {
	r := mustParse(t, "/posts/{year:[0-9]{4}}/{slug}")

	params, ok := r.Match("/posts/2024/hello")
	require.True(t, ok)
	year, _ := params.Get("year")
	assert.Equal(t, "2024", year)

	_, ok = r.Match("/posts/24/hello")
	assert.False(t, ok)
	// the pattern is anchored to the whole segment
	_, ok = r.Match("/posts/20245/hello")
	assert.False(t, ok)
}

func TestMatchCatchAll(t *testing.T) {
	r := mustParse(t, "/files/{path:*}")

	params, ok := r.Match("/files/a/b/c.txt")
	require.True(t, ok)
	path, _ := params.Get("path")
	assert.Equal(t, "/a/b/c.txt", path)

	// the trailing slash alone captures "/"
	params, ok = r.Match("/files/")
	require.True(t, ok)
	path, _ = params.Get("path")
	assert.Equal(t, "/", path)

	_, ok = r.Match("/files")
	assert.False(t, ok)
	_, ok = r.Match("/other/a")
	assert.False(t, ok)
}

func TestMatchRoot(t *testing.T) {
	r := mustParse(t, "/")

	params, ok := r.Match("/")
	require.True(t, ok)
	assert.NotNil(t, params)

	_, ok = r.Match("")
	assert.False(t, ok)
	_, ok = r.Match("/x")
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	r := mustParse(t, "/x")
	r.Merge(Options{Name: "first", CaseSensitive: Bool(true)})

	// unset fields leave the previous values alone
	r.Merge(Options{})
	assert.Equal(t, "first", r.Name())
	assert.True(t, r.CaseSensitive())

	r.Merge(Options{Name: "second", CaseSensitive: Bool(false)})
	assert.Equal(t, "second", r.Name())
	assert.False(t, r.CaseSensitive())
}

func TestGenerate(t *testing.T) {
	r := mustParse(t, "/users/{name}/entries/{id:[0-9]+}")

	url, err := r.Generate(map[string]string{"name": "gopher", "id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/users/gopher/entries/42", url)

	_, err = r.Generate(map[string]string{"name": "gopher"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")

	_, err = r.Generate(map[string]string{"name": "gopher", "id": "nope"})
	require.Error(t, err)
}

func TestGenerateCatchAll(t *testing.T) {
	r := mustParse(t, "/files/{path:*}")

	// the captured form carries a leading slash; Generate accepts both
	url, err := r.Generate(map[string]string{"path": "/a/b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.txt", url)

	url, err = r.Generate(map[string]string{"path": "a/b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/files/a/b.txt", url)
}

func TestGenerateMatchRoundTrip(t *testing.T) {
	r := mustParse(t, "/blog/{category}/{post:[a-z0-9-]+}")
	values := map[string]string{"category": "go", "post": "error-handling"}

	url, err := r.Generate(values)
	require.NoError(t, err)

	params, ok := r.Match(url)
	require.True(t, ok)
	for _, p := range params {
		assert.Equal(t, values[p.Name], p.Value)
	}
}
