package editor

import (
	"strconv"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// Runtime is the Lambda runtime written into every generated function.
const Runtime = "nodejs20.x"

// logRetentionDays applies to every generated LogGroup.
const logRetentionDays = 30

// FunctionNode builds a Serverless Function resource for a lambda. Each
// name in envVars becomes an Environment.Variables entry referencing its
// Env parameter.
func FunctionNode(name string, timeout int, envVars []string) *template.Node {
	res := template.NewResource(samkit.TypeFunction)
	template.SetProperty(res, "Handler", template.Scalar("handler.handler"))
	template.SetProperty(res, "Runtime", template.Scalar(Runtime))
	template.SetProperty(res, "CodeUri", template.Scalar("src/"+name))
	template.SetProperty(res, "Timeout", template.Scalar(strconv.Itoa(timeout)))
	if len(envVars) > 0 {
		vars := template.NewMap()
		for _, v := range envVars {
			vars.Set(v, template.Ref(samkit.EnvParameter(v)))
		}
		env := template.NewMap()
		env.Set("Variables", vars)
		template.SetProperty(res, "Environment", env)
	}
	template.SetMetadata(res, esbuildMetadata("handler.ts"))
	return res
}

// AuthorizerFunctionNode builds the shared Basic auth authorizer function.
func AuthorizerFunctionNode() *template.Node {
	res := template.NewResource(samkit.TypeFunction)
	template.SetProperty(res, "Handler", template.Scalar("handler.handler"))
	template.SetProperty(res, "Runtime", template.Scalar(Runtime))
	template.SetProperty(res, "CodeUri", template.Scalar("src/authorizer"))
	template.SetProperty(res, "Timeout", template.Scalar("10"))
	template.SetMetadata(res, esbuildMetadata("handler.ts"))
	return res
}

func esbuildMetadata(entryPoint string) *template.Node {
	entries := template.NewSequence()
	entries.Append(template.Scalar(entryPoint))
	props := template.NewMap()
	props.Set("Minify", template.Scalar("true"))
	props.Set("Target", template.Scalar("es2020"))
	props.Set("EntryPoints", entries)
	meta := template.NewMap()
	meta.Set("BuildMethod", template.Scalar("esbuild"))
	meta.Set("BuildProperties", props)
	return meta
}

// LogGroupNode builds the LogGroup paired with a function resource.
func LogGroupNode(functionResource string) *template.Node {
	res := template.NewResource(samkit.TypeLogGroup)
	template.SetProperty(res, "LogGroupName", template.Sub("/aws/lambda/${"+functionResource+"}"))
	template.SetProperty(res, "RetentionInDays", template.Scalar(strconv.Itoa(logRetentionDays)))
	return res
}

// GatewayNode builds a Serverless Api resource.
func GatewayNode(name string) *template.Node {
	res := template.NewResource(samkit.TypeAPI)
	template.SetProperty(res, "Name", template.Sub("${AWS::StackName}-"+name))
	template.SetProperty(res, "StageName", template.Ref("Stage"))
	return res
}

// GatewayURLOutputNode builds the invoke-URL output paired with a gateway.
func GatewayURLOutputNode(gateway string) *template.Node {
	out := template.NewMap()
	out.Set("Description", template.Scalar("Invoke URL for "+gateway))
	out.Set("Value", template.Sub("https://${"+gateway+"}.execute-api.${AWS::Region}.amazonaws.com/${Stage}/"))
	return out
}

// EventNode builds one Api event binding.
func EventNode(gateway, method, path string) *template.Node {
	props := template.NewMap()
	props.Set("RestApiId", template.Ref(gateway))
	props.Set("Path", template.Scalar(path))
	props.Set("Method", template.Scalar(method))
	event := template.NewMap()
	event.Set("Type", template.Scalar("Api"))
	event.Set("Properties", props)
	return event
}

// StageParameterNode builds the Stage parameter every project carries.
func StageParameterNode(stage string) *template.Node {
	param := template.NewMap()
	param.Set("Type", template.Scalar("String"))
	param.Set("Default", template.Scalar(stage))
	return param
}

// EnvParameterNode builds the Parameters entry backing one environment
// variable.
func EnvParameterNode(value string) *template.Node {
	param := template.NewMap()
	param.Set("Type", template.Scalar("String"))
	param.Set("Default", template.Scalar(value))
	return param
}

// SSMParameterNode builds the SSM parameter resource backing one
// environment variable.
func SSMParameterNode(name string) *template.Node {
	res := template.NewResource(samkit.TypeSSMParameter)
	template.SetProperty(res, "Name", template.Sub("/${AWS::StackName}/"+name))
	template.SetProperty(res, "Type", template.Scalar("String"))
	template.SetProperty(res, "Value", template.Ref(samkit.EnvParameter(name)))
	return res
}

// LayerNode builds a LayerVersion resource.
func LayerNode(name string) *template.Node {
	res := template.NewResource(samkit.TypeLayerVersion)
	template.SetProperty(res, "LayerName", template.Sub("${AWS::StackName}-"+name))
	template.SetProperty(res, "ContentUri", template.Scalar("src/layers/"+name))
	runtimes := template.NewSequence()
	runtimes.Append(template.Scalar(Runtime))
	template.SetProperty(res, "CompatibleRuntimes", runtimes)
	template.SetProperty(res, "RetentionPolicy", template.Scalar("Delete"))
	meta := template.NewMap()
	meta.Set("BuildMethod", template.Scalar(Runtime))
	template.SetMetadata(res, meta)
	return res
}

// TableNode builds a DynamoDB table with a simple or composite primary key.
// The TableName is the literal logical name so the generated query helpers
// can address the table without indirection.
func TableNode(name, partitionKey, sortKey string) *template.Node {
	res := template.NewResource(samkit.TypeTable)
	template.SetProperty(res, "TableName", template.Scalar(name))
	template.SetProperty(res, "BillingMode", template.Scalar("PAY_PER_REQUEST"))

	attrs := template.NewSequence()
	attrs.Append(attributeDefinition(partitionKey))
	keys := template.NewSequence()
	keys.Append(keyElement(partitionKey, "HASH"))
	if sortKey != "" {
		attrs.Append(attributeDefinition(sortKey))
		keys.Append(keyElement(sortKey, "RANGE"))
	}
	template.SetProperty(res, "AttributeDefinitions", attrs)
	template.SetProperty(res, "KeySchema", keys)
	return res
}

func attributeDefinition(name string) *template.Node {
	attr := template.NewMap()
	attr.Set("AttributeName", template.Scalar(name))
	attr.Set("AttributeType", template.Scalar("S"))
	return attr
}

func keyElement(name, keyType string) *template.Node {
	key := template.NewMap()
	key.Set("AttributeName", template.Scalar(name))
	key.Set("KeyType", template.Scalar(keyType))
	return key
}

// TablePolicyNode builds the ManagedPolicy granting a function CRUD access
// to one table.
func TablePolicyNode(table string) *template.Node {
	actions := template.NewSequence()
	for _, action := range []string{
		"dynamodb:PutItem",
		"dynamodb:GetItem",
		"dynamodb:DeleteItem",
		"dynamodb:UpdateItem",
		"dynamodb:Query",
		"dynamodb:Scan",
	} {
		actions.Append(template.Scalar(action))
	}
	statement := template.NewMap()
	statement.Set("Effect", template.Scalar("Allow"))
	statement.Set("Action", actions)
	statement.Set("Resource", template.GetAtt(table+".Arn"))
	statements := template.NewSequence()
	statements.Append(statement)

	policyDoc := template.NewMap()
	policyDoc.Set("Version", template.QuotedScalar("2012-10-17"))
	policyDoc.Set("Statement", statements)

	res := template.NewResource(samkit.TypeManagedPolicy)
	template.SetProperty(res, "PolicyDocument", policyDoc)
	return res
}

// UserPoolNode builds a Cognito user pool.
func UserPoolNode(pool string) *template.Node {
	res := template.NewResource(samkit.TypeUserPool)
	template.SetProperty(res, "UserPoolName", template.Sub("${AWS::StackName}-"+pool))
	emails := template.NewSequence()
	emails.Append(template.Scalar("email"))
	template.SetProperty(res, "UsernameAttributes", emails)
	verified := template.NewSequence()
	verified.Append(template.Scalar("email"))
	template.SetProperty(res, "AutoVerifiedAttributes", verified)
	return res
}

// UserPoolClientNode builds the app client paired with a user pool.
func UserPoolClientNode(poolResource string) *template.Node {
	res := template.NewResource(samkit.TypeUserPoolClient)
	template.SetProperty(res, "UserPoolId", template.Ref(poolResource))
	flows := template.NewSequence()
	flows.Append(template.Scalar("ALLOW_USER_PASSWORD_AUTH"))
	flows.Append(template.Scalar("ALLOW_REFRESH_TOKEN_AUTH"))
	template.SetProperty(res, "ExplicitAuthFlows", flows)
	template.SetProperty(res, "GenerateSecret", template.Scalar("false"))
	return res
}
