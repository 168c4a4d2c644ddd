package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

// demoTemplate is a freshly scaffolded project: one lambda wired to env
// var A2, the default gateway, and a GET /hello binding. The text is
// serializer-shaped, so mutation round-trips can compare bytes.
const demoTemplate = `AWSTemplateFormatVersion: '2010-09-09'
Transform: AWS::Serverless-2016-10-31
Description: demo
Parameters:
  Stage:
    Type: String
    Default: dev
  EnvA2:
    Type: String
    Default: some-value
Resources:
  demoFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
      Runtime: nodejs20.x
      CodeUri: src/demo
      Timeout: 30
      Environment:
        Variables:
          A2: !Ref EnvA2
      Events:
        event1:
          Type: Api
          Properties:
            RestApiId: !Ref ApiGateway
            Path: /hello
            Method: get
    Metadata:
      BuildMethod: esbuild
      BuildProperties:
        Minify: true
        Target: es2020
        EntryPoints:
          - handler.ts
  demoLogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      LogGroupName: !Sub /aws/lambda/${demoFunction}
      RetentionInDays: 30
  ApiGateway:
    Type: AWS::Serverless::Api
    Properties:
      Name: !Sub ${AWS::StackName}-ApiGateway
      StageName: !Ref Stage
  ParamA2:
    Type: AWS::SSM::Parameter
    Properties:
      Name: !Sub /${AWS::StackName}/A2
      Type: String
      Value: !Ref EnvA2
Outputs:
  ApiGatewayUrl:
    Description: Invoke URL for ApiGateway
    Value: !Sub https://${ApiGateway}.execute-api.${AWS::Region}.amazonaws.com/${Stage}/
`

const demoEnv = "ENVIRONMENT=dev\nA2=some-value\n"

// newTestEditor seeds a demo project in memory.
func newTestEditor(t *testing.T) (*Editor, context.Context) {
	t.Helper()
	ctx := context.Background()
	e := New(afs.New(), "mem://localhost/samkit/"+t.Name())
	require.NoError(t, e.Tree().WriteFile(ctx, TemplateFile, demoTemplate))
	require.NoError(t, e.Tree().WriteFile(ctx, EnvFile, demoEnv))
	require.NoError(t, e.Tree().EnsureFunction(ctx, "demo"))
	return e, ctx
}

// templateText reads the current template bytes.
func templateText(t *testing.T, ctx context.Context, e *Editor) string {
	t.Helper()
	content, err := e.Tree().ReadFile(ctx, TemplateFile)
	require.NoError(t, err)
	return content
}

// fileExists reports whether a project file or folder is present.
func fileExists(t *testing.T, ctx context.Context, e *Editor, rel string) bool {
	t.Helper()
	ok, err := e.Tree().Exists(ctx, rel)
	require.NoError(t, err)
	return ok
}

func TestEditor_Load_RoundTrip(t *testing.T) {
	e, ctx := newTestEditor(t)

	doc, err := e.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, demoTemplate, string(doc.Bytes()))
}

func TestEditor_Load_MissingTemplate(t *testing.T) {
	ctx := context.Background()
	e := New(afs.New(), "mem://localhost/samkit/"+t.Name())

	_, err := e.Load(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), TemplateFile)
}
