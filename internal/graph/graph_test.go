package graph

import (
	"strings"
	"testing"

	"github.com/samkit-io/samkit/internal/template"
)

const fixture = `AWSTemplateFormatVersion: '2010-09-09'
Transform: AWS::Serverless-2016-10-31
Description: graph fixture
Parameters:
  Stage:
    Type: String
    Default: dev
Resources:
  demoFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
      Runtime: nodejs20.x
      CodeUri: src/demo
      Timeout: 30
      Events:
        event1:
          Type: Api
          Properties:
            RestApiId: !Ref ApiGateway
            Path: /hello
            Method: get
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
  users:
    Type: AWS::DynamoDB::Table
    Properties:
      TableName: users
  usersPolicy:
    Type: AWS::IAM::ManagedPolicy
    Properties:
      PolicyDocument:
        Version: '2012-10-17'
        Statement:
          - Effect: Allow
            Resource: !GetAtt users.Arn
`

func parseFixture(t *testing.T) *template.Document {
	t.Helper()
	doc, err := template.Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestGenerator_Generate_SimpleGraph(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(parseFixture(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// Should be a digraph
	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}

	// Should have labeled nodes for the resources
	if !strings.Contains(output, `demoFunction\n[AWS::Serverless::Function]`) {
		t.Error("expected demoFunction node")
	}
	if !strings.Contains(output, `ApiGateway\n[AWS::Serverless::Api]`) {
		t.Error("expected ApiGateway node")
	}

	// Parameters stay out of the graph by default
	if strings.Contains(output, `label="Stage"`) {
		t.Error("expected Stage parameter to be excluded")
	}
}

func TestGenerator_Generate_WithGetAtt(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(parseFixture(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// GetAtt edges should be blue
	if !strings.Contains(output, "blue") {
		t.Error("expected blue color for GetAtt edge")
	}
}

func TestGenerator_Generate_WithParameters(t *testing.T) {
	gen := &Generator{IncludeParameters: true}
	var sb strings.Builder
	if err := gen.Generate(parseFixture(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// Should include parameter node
	if !strings.Contains(output, "Stage") {
		t.Error("expected Stage parameter node")
	}

	// Parameter nodes should be ellipse/dashed
	if !strings.Contains(output, "ellipse") {
		t.Error("expected ellipse shape for parameter")
	}
	if !strings.Contains(output, "dashed") {
		t.Error("expected dashed style for parameter")
	}
}

func TestGenerator_Generate_ClusterByType(t *testing.T) {
	gen := &Generator{ClusterByType: true}
	var sb strings.Builder
	if err := gen.Generate(parseFixture(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// demoFunction and ApiGateway share the Serverless service
	if !strings.Contains(output, "cluster_Serverless") {
		t.Error("expected Serverless cluster subgraph")
	}
}

func TestGenerator_Generate_MermaidFormat(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	var sb strings.Builder
	if err := gen.Generate(parseFixture(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// Should be mermaid format (flowchart or graph)
	if !strings.Contains(output, "graph") && !strings.Contains(output, "flowchart") {
		t.Errorf("expected mermaid graph/flowchart, got:\n%s", output)
	}

	// Should NOT be DOT format
	if strings.Contains(output, "digraph") {
		t.Error("expected mermaid format, not DOT")
	}
}

func TestGenerator_GenerateString(t *testing.T) {
	gen := &Generator{}
	output, err := gen.GenerateString(parseFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, "demoFunction") {
		t.Error("expected demoFunction in output")
	}
}
