package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refsTemplate = `Transform: AWS::Serverless-2016-10-31
Resources:
  helloFunction:
    Type: AWS::Serverless::Function
    Properties:
      Handler: handler.handler
      Layers:
        - !Ref shared
      Policies:
        - !Ref UsersTablePolicy
  helloLogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      LogGroupName: !Sub /aws/lambda/${helloFunction}
  shared:
    Type: AWS::Serverless::LayerVersion
    Properties:
      LayerName: shared
  UsersTable:
    Type: AWS::DynamoDB::Table
    Properties:
      BillingMode: PAY_PER_REQUEST
  UsersTablePolicy:
    Type: AWS::IAM::ManagedPolicy
    Properties:
      PolicyDocument:
        Version: '2012-10-17'
        Statement:
          - Effect: Allow
            Action:
              - dynamodb:GetItem
            Resource: !GetAtt UsersTable.Arn
Outputs:
  ApiUrl:
    Value: !Sub https://${ApiGateway}.execute-api.${AWS::Region}.amazonaws.com/
  TableName:
    Value: !Ref UsersTable
`

func TestReferences_Kinds(t *testing.T) {
	doc, err := Parse([]byte(refsTemplate))
	require.NoError(t, err)

	refs := References(doc)

	assert.Contains(t, refs, Reference{From: "helloFunction", To: "shared", Kind: RefPlain})
	assert.Contains(t, refs, Reference{From: "helloFunction", To: "UsersTablePolicy", Kind: RefPlain})
	assert.Contains(t, refs, Reference{From: "helloLogGroup", To: "helloFunction", Kind: RefSub})
	assert.Contains(t, refs, Reference{From: "UsersTablePolicy", To: "UsersTable", Kind: RefGetAtt})
}

func TestReferences_SkipsPseudoParameters(t *testing.T) {
	doc, err := Parse([]byte(refsTemplate))
	require.NoError(t, err)

	for _, ref := range OutputReferences(doc) {
		assert.NotContains(t, ref.To, "AWS::")
	}
}

func TestResourcesReferencing(t *testing.T) {
	doc, err := Parse([]byte(refsTemplate))
	require.NoError(t, err)

	assert.Equal(t, []string{"helloFunction"}, ResourcesReferencing(doc, "shared"))
	assert.Equal(t, []string{"UsersTablePolicy"}, ResourcesReferencing(doc, "UsersTable"))
	assert.Empty(t, ResourcesReferencing(doc, "nothingHere"))
}

func TestResourcesReferencing_ExcludesSelf(t *testing.T) {
	doc, err := Parse([]byte(refsTemplate))
	require.NoError(t, err)

	// helloLogGroup references helloFunction; helloFunction must not be
	// reported as referencing itself through its own subtree.
	assert.NotContains(t, ResourcesReferencing(doc, "helloFunction"), "helloFunction")
}

func TestOutputsReferencing(t *testing.T) {
	doc, err := Parse([]byte(refsTemplate))
	require.NoError(t, err)

	assert.Equal(t, []string{"ApiUrl"}, OutputsReferencing(doc, "ApiGateway"))
	assert.Equal(t, []string{"TableName"}, OutputsReferencing(doc, "UsersTable"))
	assert.Empty(t, OutputsReferencing(doc, "shared"))
}
