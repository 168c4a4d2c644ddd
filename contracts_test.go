package samkit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointIndex_HasRoute(t *testing.T) {
	idx := EndpointIndex{
		"ApiGateway": {
			"hello": {{Event: "event1", Method: "get", Path: "/hello"}},
			"users": {{Event: "event1", Method: "post", Path: "/users"}},
		},
		"AdminApi": {
			"hello": {{Event: "event2", Method: "get", Path: "/admin"}},
		},
	}

	tests := []struct {
		name     string
		gateway  string
		method   string
		path     string
		expected bool
	}{
		{"existing route", "ApiGateway", "get", "/hello", true},
		{"method is case-insensitive", "ApiGateway", "GET", "/hello", true},
		{"other lambda same gateway", "ApiGateway", "post", "/users", true},
		{"same route other gateway", "AdminApi", "get", "/hello", false},
		{"method differs", "ApiGateway", "post", "/hello", false},
		{"path differs", "ApiGateway", "get", "/goodbye", false},
		{"unknown gateway", "MissingApi", "get", "/hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, idx.HasRoute(tt.gateway, tt.method, tt.path))
		})
	}
}

func TestEndpointIndex_HasBinding(t *testing.T) {
	idx := EndpointIndex{
		"ApiGateway": {
			"hello": {{Event: "event1", Method: "get", Path: "/hello"}},
		},
		"AdminApi": {
			"hello": {{Event: "event2", Method: "get", Path: "/status"}},
		},
	}

	// The create-flow scope spans every gateway.
	assert.True(t, idx.HasBinding("get", "/hello", "hello"))
	assert.True(t, idx.HasBinding("GET", "/status", "hello"))

	// Same route on a different lambda is not a triple match.
	assert.False(t, idx.HasBinding("get", "/hello", "users"))
	assert.False(t, idx.HasBinding("post", "/hello", "hello"))
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in    string
		out   string
		valid bool
	}{
		{"GET", "get", true},
		{"get", "get", true},
		{" Post ", "post", true},
		{"DELETE", "delete", true},
		{"ANY", "any", true},
		{"fetch", "fetch", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, ok := NormalizeMethod(tt.in)
			assert.Equal(t, tt.valid, ok)
			if ok {
				assert.Equal(t, tt.out, m)
			}
		})
	}
}

func TestValidLogicalName(t *testing.T) {
	assert.True(t, ValidLogicalName("hello"))
	assert.True(t, ValidLogicalName("lambda2"))
	assert.True(t, ValidLogicalName("UsersTable"))
	assert.False(t, ValidLogicalName(""))
	assert.False(t, ValidLogicalName("2lambda"))
	assert.False(t, ValidLogicalName("my-function"))
	assert.False(t, ValidLogicalName("my_function"))
	assert.False(t, ValidLogicalName("name with space"))
}

func TestValidPath(t *testing.T) {
	assert.True(t, ValidPath("/hello"))
	assert.True(t, ValidPath("/users/{id}"))
	assert.False(t, ValidPath("hello"))
	assert.False(t, ValidPath("/has space"))
	assert.False(t, ValidPath(""))
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("function", "lambda2")
	require.Error(t, err)
	assert.Equal(t, `function "lambda2" not found`, err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))

	wrapped := fmt.Errorf("deleting endpoint: %w", err)
	assert.True(t, IsNotFound(wrapped))
}

func TestConflictError(t *testing.T) {
	err := Conflictf("endpoint get %s already exists", "/hello")
	require.Error(t, err)
	assert.Equal(t, "endpoint get /hello already exists", err.Error())
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("adding endpoint: %w", err)
	assert.True(t, IsConflict(wrapped))
}

func TestSyncPlan_IsEmpty(t *testing.T) {
	assert.True(t, SyncPlan{}.IsEmpty())
	assert.False(t, SyncPlan{Added: []EnvVar{{Name: "A1", Value: "x"}}}.IsEmpty())
	assert.False(t, SyncPlan{Removed: []string{"A2"}}.IsEmpty())
	assert.False(t, SyncPlan{Changed: []EnvVar{{Name: "A3", Value: "y"}}}.IsEmpty())
}
