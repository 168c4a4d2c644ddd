package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	samkit "github.com/samkit-io/samkit"
)

func TestEditor_AddEndpoint(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.AddEndpoint(ctx, "ApiGateway", "POST", "/orders", "demo"))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	bindings := idx["ApiGateway"]["demoFunction"]
	require.Len(t, bindings, 2)
	assert.Equal(t, samkit.EventBinding{Event: "event2", Method: "post", Path: "/orders"}, bindings[1])
}

func TestEditor_AddEndpoint_DuplicateTripleAnyGateway(t *testing.T) {
	e, ctx := newTestEditor(t)

	err := e.AddEndpoint(ctx, "ApiGateway", "get", "/hello", "demo")
	assert.True(t, samkit.IsConflict(err), "got %v", err)

	// The same triple is rejected even through a different gateway.
	require.NoError(t, e.AddGateway(ctx, "api2"))
	err = e.AddEndpoint(ctx, "api2", "get", "/hello", "demo")
	assert.True(t, samkit.IsConflict(err), "got %v", err)
}

func TestEditor_AddEndpoint_SameRouteOtherLambda(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddFunction(ctx, "lambda2", 15, nil))

	require.NoError(t, e.AddEndpoint(ctx, "ApiGateway", "get", "/hello", "lambda2"))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	assert.Len(t, idx["ApiGateway"]["demoFunction"], 1)
	assert.Len(t, idx["ApiGateway"]["lambda2Function"], 1)
}

func TestEditor_AddEndpoint_UnknownTargets(t *testing.T) {
	e, ctx := newTestEditor(t)

	err := e.AddEndpoint(ctx, "ghost", "get", "/x", "demo")
	assert.True(t, samkit.IsNotFound(err), "got %v", err)

	err = e.AddEndpoint(ctx, "ApiGateway", "get", "/x", "ghost")
	assert.True(t, samkit.IsNotFound(err), "got %v", err)
}

func TestEditor_AddEndpoint_InvalidInput(t *testing.T) {
	e, ctx := newTestEditor(t)

	assert.Error(t, e.AddEndpoint(ctx, "ApiGateway", "fetch", "/x", "demo"))
	assert.Error(t, e.AddEndpoint(ctx, "ApiGateway", "get", "no-slash", "demo"))
	assert.Error(t, e.AddEndpoint(ctx, "ApiGateway", "get", "/with space", "demo"))
}

func TestEditor_DeleteEndpoint_RemovesEmptyWrapper(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.DeleteEndpoint(ctx, "GET", "/hello", "demo"))

	text := templateText(t, ctx, e)
	assert.NotContains(t, text, "Events:")
	assert.NotContains(t, text, "event1:")
}

func TestEditor_DeleteEndpoint_NotFound(t *testing.T) {
	e, ctx := newTestEditor(t)

	err := e.DeleteEndpoint(ctx, "post", "/nope", "demo")
	assert.True(t, samkit.IsNotFound(err), "got %v", err)
}

func TestEditor_UpdateEndpoint_InPlace(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.UpdateEndpoint(ctx, "ApiGateway", "get", "/hello", "post", "/hi", ""))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	bindings := idx["ApiGateway"]["demoFunction"]
	require.Len(t, bindings, 1)
	// In-place rewrite keeps the binding name.
	assert.Equal(t, samkit.EventBinding{Event: "event1", Method: "post", Path: "/hi"}, bindings[0])
}

func TestEditor_UpdateEndpoint_MoveToOtherLambda(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddFunction(ctx, "lambda2", 15, nil))

	require.NoError(t, e.UpdateEndpoint(ctx, "ApiGateway", "get", "/hello", "", "", "lambda2"))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, idx["ApiGateway"]["demoFunction"])
	bindings := idx["ApiGateway"]["lambda2Function"]
	require.Len(t, bindings, 1)
	assert.Equal(t, samkit.EventBinding{Event: "event1", Method: "get", Path: "/hello"}, bindings[0])

	// The old lambda's emptied Events wrapper is gone.
	doc, err := e.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, eventsOf(doc.Resource("demoFunction")))
}

func TestEditor_UpdateEndpoint_DuplicateRouteSameGateway(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddEndpoint(ctx, "ApiGateway", "post", "/orders", "demo"))

	err := e.UpdateEndpoint(ctx, "ApiGateway", "get", "/hello", "post", "/orders", "")
	assert.True(t, samkit.IsConflict(err), "got %v", err)
}

func TestEditor_UpdateEndpoint_NotFound(t *testing.T) {
	e, ctx := newTestEditor(t)

	err := e.UpdateEndpoint(ctx, "ApiGateway", "put", "/nope", "get", "/x", "")
	assert.True(t, samkit.IsNotFound(err), "got %v", err)
}

func TestEditor_EventNumbering_Monotonic(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.AddEndpoint(ctx, "ApiGateway", "post", "/a", "demo"))
	require.NoError(t, e.DeleteEndpoint(ctx, "get", "/hello", "demo"))
	require.NoError(t, e.AddEndpoint(ctx, "ApiGateway", "put", "/b", "demo"))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	bindings := idx["ApiGateway"]["demoFunction"]
	require.Len(t, bindings, 2)
	// event1 was deleted; the next name counts up from the highest
	// survivor instead of reusing 1.
	assert.Equal(t, "event2", bindings[0].Event)
	assert.Equal(t, "event3", bindings[1].Event)
}
