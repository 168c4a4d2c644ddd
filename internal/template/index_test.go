package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	samkit "github.com/samkit-io/samkit"
)

const indexedTemplate = `Transform: AWS::Serverless-2016-10-31
Resources:
  helloFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
      Events:
        event1:
          Type: Api
          Properties:
            RestApiId: !Ref ApiGateway
            Path: /hello
            Method: GET
        event2:
          Type: Api
          Properties:
            RestApiId: !Ref AdminApi
            Path: /admin
            Method: post
        event3:
          Type: Api
          Properties:
            RestApiId: !GetAtt ApiGateway.RootResourceId
            Path: /ignored
            Method: get
        schedule:
          Type: Schedule
          Properties:
            Schedule: rate(1 hour)
  usersFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
      Events:
        event1:
          Type: Api
          Properties:
            RestApiId: !Ref ApiGateway
            Path: /users
            Method: put
  quietFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
  ApiGateway:
    Type: AWS::Serverless::Api
    Properties:
      StageName: dev
  AdminApi:
    Type: AWS::Serverless::Api
    Properties:
      StageName: dev
`

func TestIndex_MultipleGateways(t *testing.T) {
	doc, err := Parse([]byte(indexedTemplate))
	require.NoError(t, err)

	idx := Index(doc)
	require.Len(t, idx, 2)

	hello := idx["ApiGateway"]["helloFunction"]
	require.Len(t, hello, 1)
	assert.Equal(t, samkit.EventBinding{Event: "event1", Method: "get", Path: "/hello"}, hello[0])

	admin := idx["AdminApi"]["helloFunction"]
	require.Len(t, admin, 1)
	assert.Equal(t, "event2", admin[0].Event)
	assert.Equal(t, "post", admin[0].Method)

	users := idx["ApiGateway"]["usersFunction"]
	require.Len(t, users, 1)
	assert.Equal(t, "/users", users[0].Path)
}

func TestIndex_MethodNormalizedLowercase(t *testing.T) {
	doc, err := Parse([]byte(indexedTemplate))
	require.NoError(t, err)

	idx := Index(doc)
	assert.True(t, idx.HasRoute("ApiGateway", "GET", "/hello"))
	assert.True(t, idx.HasBinding("get", "/hello", "helloFunction"))
}

func TestIndex_SkipsNonRefAndNonAPI(t *testing.T) {
	doc, err := Parse([]byte(indexedTemplate))
	require.NoError(t, err)

	idx := Index(doc)
	for _, byLambda := range idx {
		for _, bindings := range byLambda {
			for _, b := range bindings {
				assert.NotEqual(t, "/ignored", b.Path, "GetAtt RestApiId must stay unindexed")
				assert.NotEqual(t, "schedule", b.Event, "non-Api events must stay unindexed")
			}
		}
	}
}

func TestIndex_GatewayWithoutEndpoints(t *testing.T) {
	doc, err := Parse([]byte(indexedTemplate))
	require.NoError(t, err)

	idx := Index(doc)
	byLambda, ok := idx["AdminApi"]
	require.True(t, ok)
	assert.NotContains(t, byLambda, "usersFunction")
	assert.NotContains(t, byLambda, "quietFunction")
}

func TestIndex_EmptyDocument(t *testing.T) {
	doc, err := Parse([]byte("Transform: AWS::Serverless-2016-10-31\n"))
	require.NoError(t, err)
	assert.Empty(t, Index(doc))
}
