package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `[
  {"domain":null,"method":"GET|HEAD","uri":"about","name":"about","action":"App\\Http\\Controllers\\HomeController@about","middleware":["web"]},
  {"domain":null,"method":"GET|HEAD","uri":"users/{id}","name":"users.show","action":"App\\Http\\Controllers\\UserController@show"},
  {"domain":null,"method":"PUT|PATCH","uri":"users/{id}","name":"users.update","action":"App\\Http\\Controllers\\UserController@update"},
  {"domain":null,"method":"GET|HEAD","uri":"posts/{id?}","action":"App\\Http\\Controllers\\PostController@index"},
  {"domain":null,"method":"GET|HEAD","uri":"{account}.localhost/terms/shop-member","action":"App\\Http\\Controllers\\TermsController@shopMember"},
  {"domain":"{tenant}.example.com","method":["GET","HEAD"],"uri":"dashboard","action":"App\\Http\\Controllers\\DashboardController@index"},
  {"domain":null,"method":"GET|HEAD","uri":"health","action":"Closure"}
]`

func mustParse(t *testing.T, data string) []Route {
	t.Helper()
	routes, err := ParseRoutes([]byte(data))
	require.NoError(t, err)
	return routes
}

func actions(matches []RouteMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Action
	}
	return out
}

func TestFindMatches_Exact(t *testing.T) {
	routes := mustParse(t, sampleListing)

	matches := FindMatches(routes, "about")
	require.Len(t, matches, 1)
	assert.Equal(t, `App\Http\Controllers\HomeController@about`, matches[0].Action)
	assert.Equal(t, MatchExact, matches[0].Kind)
	assert.Equal(t, []string{"GET"}, matches[0].Methods)
}

func TestFindMatches_FullURLWithQuery(t *testing.T) {
	routes := mustParse(t, sampleListing)

	matches := FindMatches(routes, "http://localhost:8000/users/123?edit=true")
	assert.Equal(t, []string{
		`App\Http\Controllers\UserController@show`,
		`App\Http\Controllers\UserController@update`,
	}, actions(matches), "declaration order is preserved")
	assert.Equal(t, MatchPath, matches[0].Kind)
	assert.Equal(t, "123", matches[0].Params["id"])
}

func TestFindMatches_NoTrailingSegment(t *testing.T) {
	routes := mustParse(t, sampleListing)
	assert.Empty(t, FindMatches(routes, "users/123/edit"))
}

func TestFindMatches_OptionalParam(t *testing.T) {
	routes := mustParse(t, sampleListing)

	assert.Len(t, FindMatches(routes, "posts"), 1)
	assert.Len(t, FindMatches(routes, "posts/5"), 1)
	assert.Len(t, FindMatches(routes, "/posts/5/"), 1)
	assert.Len(t, FindMatches(routes, "http://localhost/posts"), 1)

	matches := FindMatches(routes, "http://localhost:8000/posts/5")
	require.Len(t, matches, 1)
	assert.Equal(t, MatchPath, matches[0].Kind)
	assert.Equal(t, "5", matches[0].Params["id"])
}

func TestFindMatches_LeadingPlaceholder(t *testing.T) {
	routes := []Route{{URI: "{locale}/about", Action: `App\Http\Controllers\PageController@about`}}

	for _, input := range []string{"en/about", "/en/about", "http://localhost/en/about", "https://example.com:8443/en/about?ref=1"} {
		t.Run(input, func(t *testing.T) {
			matches := FindMatches(routes, input)
			require.Len(t, matches, 1)
			assert.Equal(t, MatchPath, matches[0].Kind)
			assert.Equal(t, "en", matches[0].Params["locale"])
		})
	}

	assert.Empty(t, FindMatches(routes, "about"), "the locale segment is required")
}

func TestFindMatches_HostPrefixedTemplateOnPathInput(t *testing.T) {
	routes := []Route{{URI: "{account}.localhost/users/{id}", Action: "U@show"}}

	matches := FindMatches(routes, "http://localhost/users/5")
	require.Len(t, matches, 1)
	assert.Equal(t, MatchPath, matches[0].Kind)
	assert.Equal(t, "5", matches[0].Params["id"])
}

func TestFindMatches_SubdomainPlaceholderInURI(t *testing.T) {
	routes := mustParse(t, sampleListing)
	want := `App\Http\Controllers\TermsController@shopMember`

	for _, input := range []string{
		"test-account.localhost/terms/shop-member",
		"{account}.localhost/terms/shop-member",
		"/terms/shop-member",
		"terms/shop-member",
		"http://test-account.localhost:8000/terms/shop-member",
	} {
		t.Run(input, func(t *testing.T) {
			matches := FindMatches(routes, input)
			require.Len(t, matches, 1)
			assert.Equal(t, want, matches[0].Action)
		})
	}
}

func TestFindMatches_DomainField(t *testing.T) {
	routes := []Route{{
		URI:    "reports/{id}",
		Action: `App\Http\Controllers\ReportController@show`,
		Domain: "{tenant}.example.com",
	}}

	matches := FindMatches(routes, "https://acme.example.com/reports/9")
	require.Len(t, matches, 1)
	// The path alone already matches; the domain strategy is a fallback.
	assert.Equal(t, MatchPath, matches[0].Kind)
	assert.Equal(t, "9", matches[0].Params["id"])
}

func TestFindMatches_DomainStrategy(t *testing.T) {
	routes := []Route{{
		URI:    "/",
		Action: `App\Http\Controllers\TenantController@home`,
		Domain: "{tenant}.example.com",
	}}

	matches := FindMatches(routes, "acme.example.com")
	require.Len(t, matches, 1)
	assert.Equal(t, MatchDomain, matches[0].Kind)
	assert.Equal(t, "acme", matches[0].Params["tenant"])
}

func TestFindMatches_RootRoute(t *testing.T) {
	routes := []Route{{URI: "/", Action: `App\Http\Controllers\HomeController@index`}}

	assert.Len(t, FindMatches(routes, "http://localhost:8000"), 1)
	assert.Len(t, FindMatches(routes, "/"), 1)
}

func TestFindMatches_EscapedSlashes(t *testing.T) {
	routes := mustParse(t, `[{"uri":"api\\/v1\\/users\\/{id}","action":"App\\Api\\UserController@show"}]`)

	matches := FindMatches(routes, "/api/v1/users/3")
	require.Len(t, matches, 1)
	assert.Equal(t, `App\Api\UserController@show`, matches[0].Action)
}

func TestFindMatches_MalformedTemplateDoesNotStopOthers(t *testing.T) {
	routes := []Route{
		{URI: "users/{id", Action: "Broken@show"},
		{URI: "users/{id}", Action: "Good@show"},
	}

	assert.Equal(t, []string{"Good@show"}, actions(FindMatches(routes, "users/1")))
}

func TestFindMatches_DuplicatesEvaluatedIndependently(t *testing.T) {
	routes := []Route{
		{URI: "about", Action: "A@about"},
		{URI: "about", Action: "A@about"},
	}
	assert.Len(t, FindMatches(routes, "about"), 2)
}

func TestMatchJSON_Malformed(t *testing.T) {
	assert.Empty(t, MatchJSON([]byte("not json"), "about"))
	assert.Empty(t, MatchJSON([]byte(`{"uri":"about","action":"A@b"}`), "about"))
	assert.Empty(t, MatchJSON(nil, "about"))
}

func TestMatchJSON_ClosureIsMatched(t *testing.T) {
	matches := MatchJSON([]byte(sampleListing), "health")
	require.Len(t, matches, 1)
	assert.False(t, matches[0].Navigable())
}
