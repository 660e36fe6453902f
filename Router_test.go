package klein_test

import (
	"errors"
	"testing"

	"github.com/danidoble/klein"
	"github.com/danidoble/klein/consts"
	"github.com/rohanthewiz/assert"
)

// record returns a handler that appends tag to the trace.
func record(trace *[]string, tag string) klein.Handler {
	return func(ctx klein.Context) error {
		*trace = append(*trace, tag)
		return nil
	}
}

func TestDispatchOrder(t *testing.T) {
	r := klein.NewRouter()
	var trace []string

	_, err := r.Respond(nil, "/hit", record(&trace, "first"))
	assert.Nil(t, err)
	_, err = r.Respond(nil, "/hit", record(&trace, "second"))
	assert.Nil(t, err)
	_, err = r.Respond(nil, "/hit", record(&trace, "third"))
	assert.Nil(t, err)

	out, err := r.Dispatch(consts.MethodGet, "/hit")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 3)
	assert.DeepEqual(t, trace, []string{"first", "second", "third"})
	assert.Equal(t, len(out.Executed), 3)
}

func TestDispatchStop(t *testing.T) {
	r := klein.NewRouter()
	var trace []string

	r.Respond(nil, "/hit", record(&trace, "first"))
	r.Respond(nil, "/hit", func(ctx klein.Context) error {
		trace = append(trace, "second")
		ctx.Stop()
		return nil
	})
	r.Respond(nil, "/hit", record(&trace, "third"))

	out, err := r.Dispatch(consts.MethodGet, "/hit")
	assert.Nil(t, err)
	assert.True(t, out.Stopped)
	assert.DeepEqual(t, trace, []string{"first", "second"})
	assert.Equal(t, len(out.Executed), 2)
	assert.Equal(t, out.MatchedCount, 2)
}

func TestDispatchNoCountStillExecutes(t *testing.T) {
	r := klein.NewRouter()
	var trace []string

	probe, err := r.Respond(nil, "", record(&trace, "probe"), klein.RouteOpts{NoCount: true})
	assert.Nil(t, err)
	target, err := r.Get("/thing", record(&trace, "target"))
	assert.Nil(t, err)

	out, err := r.Dispatch(consts.MethodGet, "/thing")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 1)
	assert.DeepEqual(t, trace, []string{"probe", "target"})
	assert.Equal(t, len(out.Executed), 2)
	assert.True(t, out.Executed[0] == probe)
	assert.True(t, out.Executed[1] == target)

	// Only the probe matches here: it runs, yet nothing counts.
	trace = nil
	out, err = r.Dispatch(consts.MethodGet, "/other")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 0)
	assert.DeepEqual(t, trace, []string{"probe"})
	assert.Equal(t, len(out.Executed), 1)
}

func TestDispatchMethodFilter(t *testing.T) {
	r := klein.NewRouter()
	ran := false

	_, err := r.Respond(consts.MethodPost, "/submit", func(ctx klein.Context) error {
		ran = true
		return nil
	})
	assert.Nil(t, err)

	out, err := r.Dispatch(consts.MethodGet, "/submit")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 0)
	assert.False(t, ran)
	assert.Equal(t, len(out.Executed), 0)
	assert.DeepEqual(t, out.MethodsAllowed, []string{"POST"})

	out, err = r.Dispatch(consts.MethodPost, "/submit")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 1)
	assert.True(t, ran)
}

func TestDispatchMethodCaseInsensitive(t *testing.T) {
	r := klein.NewRouter()
	r.Respond("post", "/submit", noopHandler)

	out, err := r.Dispatch("PoSt", "/submit")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 1)
}

func TestDispatchMethodsAllowedDedup(t *testing.T) {
	r := klein.NewRouter()
	r.Respond(consts.MethodPost, "/x", noopHandler)
	r.Respond([]string{"POST", "PUT"}, "/x", noopHandler)

	out, err := r.Dispatch(consts.MethodGet, "/x")
	assert.Nil(t, err)
	assert.DeepEqual(t, out.MethodsAllowed, []string{"POST", "PUT"})
}

func TestDispatchParams(t *testing.T) {
	r := klein.NewRouter()
	var id, slug string

	r.Get("/users/[i:id]/posts/[s:slug]", func(ctx klein.Context) error {
		id = ctx.Params().Get("id")
		slug = ctx.Params().Get("slug")
		return nil
	})

	out, err := r.Dispatch(consts.MethodGet, "/users/42/posts/intro_1")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 1)
	assert.Equal(t, id, "42")
	assert.Equal(t, slug, "intro_1")
}

func TestDispatchParamsMergeOverwrite(t *testing.T) {
	r := klein.NewRouter()
	var first, second string

	// Both patterns match /v/b and both capture "x"; the later
	// match overwrites the earlier value in the shared sink.
	r.Respond(nil, "/[:x]/b", func(ctx klein.Context) error {
		first = ctx.Params().Get("x")
		return nil
	})
	r.Respond(nil, "/v/[:x]", func(ctx klein.Context) error {
		second = ctx.Params().Get("x")
		return nil
	})

	out, err := r.Dispatch(consts.MethodGet, "/v/b")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 2)
	assert.Equal(t, first, "v")
	assert.Equal(t, second, "b")
}

func TestDispatchZeroRoutes(t *testing.T) {
	r := klein.NewRouter()

	out, err := r.Dispatch(consts.MethodGet, "/anything")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 0)
	assert.Equal(t, len(out.Executed), 0)
	assert.False(t, out.Stopped)
	assert.False(t, out.Matched())
}

func TestDispatchIdempotent(t *testing.T) {
	r := klein.NewRouter()
	r.Get("/a/[i:n]", noopHandler)
	r.Respond(nil, "/a/[i:n]", noopHandler)

	first, err := r.Dispatch(consts.MethodGet, "/a/1")
	assert.Nil(t, err)
	second, err := r.Dispatch(consts.MethodGet, "/a/1")
	assert.Nil(t, err)

	assert.Equal(t, first.MatchedCount, second.MatchedCount)
	assert.Equal(t, first.Stopped, second.Stopped)
	assert.DeepEqual(t, first.Executed, second.Executed)
}

func TestDispatchHandlerErrorPropagates(t *testing.T) {
	r := klein.NewRouter()
	boom := errors.New("boom")
	var ranAfter bool

	failing, _ := r.Respond(nil, "/x", func(ctx klein.Context) error {
		return boom
	})
	r.Respond(nil, "/x", func(ctx klein.Context) error {
		ranAfter = true
		return nil
	})

	out, err := r.Dispatch(consts.MethodGet, "/x")
	assert.True(t, errors.Is(err, boom))
	assert.False(t, ranAfter)
	assert.False(t, out.Stopped)
	assert.Equal(t, out.MatchedCount, 1)
	assert.Equal(t, len(out.Executed), 1)
	assert.True(t, out.Executed[0] == failing)
}

func TestRegistrationAtomicity(t *testing.T) {
	r := klein.NewRouter()
	r.Get("/good", noopHandler)
	assert.Equal(t, len(r.Routes()), 1)

	_, err := r.Respond(consts.MethodGet, "/[x:", noopHandler)
	assert.True(t, errors.Is(err, klein.ErrBadPattern))
	assert.Equal(t, len(r.Routes()), 1)

	_, err = r.Respond(3.14, "/ok", noopHandler)
	assert.True(t, errors.Is(err, klein.ErrInvalidMethod))
	assert.Equal(t, len(r.Routes()), 1)

	err = r.Add(nil)
	assert.True(t, errors.Is(err, klein.ErrNilRoute))
	assert.Equal(t, len(r.Routes()), 1)
}

func TestFindByNameLastWins(t *testing.T) {
	r := klein.NewRouter()

	older, err := r.Get("/v1/users", noopHandler, klein.RouteOpts{Name: "users"})
	assert.Nil(t, err)
	newer, err := r.Get("/v2/users", noopHandler, klein.RouteOpts{Name: "users"})
	assert.Nil(t, err)

	assert.True(t, r.FindByName("users") == newer)
	assert.True(t, r.FindByName("users") != older)
	assert.True(t, r.FindByName("missing") == nil)

	// Both stay in the evaluation order regardless of the name clash.
	assert.Equal(t, len(r.Routes()), 2)
}

func TestRouterWithNamespace(t *testing.T) {
	r := klein.NewRouter()
	var patterns []string

	r.With("/api", func(r *klein.Router) {
		route, err := r.Get("/users", noopHandler)
		assert.Nil(t, err)
		patterns = append(patterns, route.Pattern())

		r.With("/v2", func(r *klein.Router) {
			route, err := r.Get("/users", noopHandler)
			assert.Nil(t, err)
			patterns = append(patterns, route.Pattern())
		})
	})

	route, err := r.Get("/plain", noopHandler)
	assert.Nil(t, err)
	patterns = append(patterns, route.Pattern())

	assert.DeepEqual(t, patterns, []string{"/api/users", "/api/v2/users", "/plain"})
}

func TestRouterMethodSugar(t *testing.T) {
	r := klein.NewRouter()

	cases := []struct {
		register func(string, klein.Handler, ...klein.RouteOpts) (*klein.Route, error)
		method   string
	}{
		{r.Get, consts.MethodGet},
		{r.Post, consts.MethodPost},
		{r.Put, consts.MethodPut},
		{r.Patch, consts.MethodPatch},
		{r.Delete, consts.MethodDelete},
		{r.Head, consts.MethodHead},
		{r.Options, consts.MethodOptions},
	}

	for _, c := range cases {
		route, err := c.register("/sugar", noopHandler)
		assert.Nil(t, err)
		assert.DeepEqual(t, route.Methods(), []string{c.method})
	}

	route, err := r.Any("/sugar", noopHandler)
	assert.Nil(t, err)
	assert.True(t, route.Methods() == nil)
}

func TestDispatchStripsQueryAndFragment(t *testing.T) {
	r := klein.NewRouter()
	var id string

	r.Get("/users/[i:id]", func(ctx klein.Context) error {
		id = ctx.Params().Get("id")
		return nil
	})

	out, err := r.Dispatch(consts.MethodGet, "/users/42?tab=posts#top")
	assert.Nil(t, err)
	assert.Equal(t, out.MatchedCount, 1)
	assert.Equal(t, id, "42")
}

func TestDispatchContextRoute(t *testing.T) {
	r := klein.NewRouter()
	var seen *klein.Route

	registered, _ := r.Get("/here", func(ctx klein.Context) error {
		seen = ctx.Route()
		return nil
	})

	_, err := r.Dispatch(consts.MethodGet, "/here")
	assert.Nil(t, err)
	assert.True(t, seen == registered)
}

func TestDispatchContextData(t *testing.T) {
	r := klein.NewRouter()
	var got any

	r.Respond(nil, "/chain", func(ctx klein.Context) error {
		ctx.Set("user", "ada")
		return nil
	})
	r.Respond(nil, "/chain", func(ctx klein.Context) error {
		got = ctx.Get("user")
		assert.True(t, ctx.Has("user"))
		return nil
	})

	_, err := r.Dispatch(consts.MethodGet, "/chain")
	assert.Nil(t, err)
	assert.Equal(t, got, "ada")
}

func TestPathFor(t *testing.T) {
	r := klein.NewRouter()

	_, err := r.Get("/users/[i:id]", noopHandler, klein.RouteOpts{Name: "user"})
	assert.Nil(t, err)

	path, err := r.PathFor("user", map[string]string{"id": "42"})
	assert.Nil(t, err)
	assert.Equal(t, path, "/users/42")

	_, err = r.PathFor("nope", nil)
	assert.True(t, errors.Is(err, klein.ErrRouteNotFound))
}

func TestPathForNamespacedRoute(t *testing.T) {
	r := klein.NewRouter()

	r.With("/api", func(r *klein.Router) {
		_, err := r.Get("/users/[i:id]", noopHandler, klein.RouteOpts{Name: "api.user"})
		assert.Nil(t, err)
	})

	path, err := r.PathFor("api.user", map[string]string{"id": "7"})
	assert.Nil(t, err)
	assert.Equal(t, path, "/api/users/7")
}
