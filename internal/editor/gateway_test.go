package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	samkit "github.com/samkit-io/samkit"
)

func TestEditor_AddGateway(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.AddGateway(ctx, "api2"))

	doc, err := e.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, samkit.TypeAPI, doc.ResourceType("api2"))
	require.NotNil(t, doc.Output("api2Url"))

	text := templateText(t, ctx, e)
	assert.Contains(t, text, "  api2Url:\n    Description: Invoke URL for api2\n")
	assert.Contains(t, text, "https://${api2}.execute-api.${AWS::Region}.amazonaws.com/${Stage}/")
}

func TestEditor_AddGateway_Duplicate(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddGateway(ctx, "api2"))

	err := e.AddGateway(ctx, "api2")
	assert.True(t, samkit.IsConflict(err), "got %v", err)
}

func TestEditor_GatewayRoundTrip(t *testing.T) {
	e, ctx := newTestEditor(t)
	before := templateText(t, ctx, e)

	require.NoError(t, e.AddGateway(ctx, "api2"))
	require.NoError(t, e.AddEndpoint(ctx, "api2", "post", "/test", "demo"))
	require.NoError(t, e.DeleteGateway(ctx, "api2"))

	assert.Equal(t, before, templateText(t, ctx, e))
}

func TestEditor_DeleteGateway_Cascades(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddFunction(ctx, "lambda2", 15, nil))
	require.NoError(t, e.AddGateway(ctx, "api2"))
	require.NoError(t, e.AddEndpoint(ctx, "api2", "post", "/a", "demo"))
	require.NoError(t, e.AddEndpoint(ctx, "api2", "get", "/b", "lambda2"))

	require.NoError(t, e.DeleteGateway(ctx, "api2"))

	idx, err := e.Endpoints(ctx)
	require.NoError(t, err)
	assert.NotContains(t, idx, "api2")
	// The binding on the surviving gateway is untouched.
	require.Len(t, idx["ApiGateway"]["demoFunction"], 1)
	assert.Equal(t, "/hello", idx["ApiGateway"]["demoFunction"][0].Path)

	doc, err := e.Load(ctx)
	require.NoError(t, err)
	// lambda2's only binding is gone, wrapper and all.
	assert.Nil(t, eventsOf(doc.Resource("lambda2Function")))
	assert.Nil(t, doc.Output("api2Url"))
	require.NotNil(t, doc.Output("ApiGatewayUrl"))
}

func TestEditor_DeleteGateway_DropsEmptyOutputs(t *testing.T) {
	e, ctx := newTestEditor(t)

	require.NoError(t, e.DeleteGateway(ctx, "ApiGateway"))

	text := templateText(t, ctx, e)
	assert.NotContains(t, text, "Outputs:")
	assert.NotContains(t, text, "Events:")
	assert.NotContains(t, text, "ApiGateway")
}

func TestEditor_DeleteGateway_NotFound(t *testing.T) {
	e, ctx := newTestEditor(t)

	err := e.DeleteGateway(ctx, "ghost")
	assert.True(t, samkit.IsNotFound(err), "got %v", err)
}

func TestEditor_Gateways(t *testing.T) {
	e, ctx := newTestEditor(t)
	require.NoError(t, e.AddGateway(ctx, "api2"))

	names, err := e.Gateways(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ApiGateway", "api2"}, names)
}
