package samkit

import "strings"

// Logical-name conventions tying a user-facing name to the template
// resources, parameters, and outputs generated for it. Every operation
// derives names through these helpers so that create and delete always
// agree on what belongs together.

// FunctionResource returns the Function resource name for a lambda.
func FunctionResource(name string) string { return name + "Function" }

// LogGroupResource returns the LogGroup resource paired with a lambda.
func LogGroupResource(name string) string { return name + "LogGroup" }

// PolicyResource returns the ManagedPolicy resource paired with a table.
func PolicyResource(table string) string { return table + "Policy" }

// EnvParameter returns the Parameters entry backing an environment variable.
func EnvParameter(name string) string { return "Env" + name }

// EnvParameterVar is the inverse of EnvParameter: it extracts the variable
// name from a Parameters entry, reporting whether the entry follows the
// Env<Name> convention.
func EnvParameterVar(param string) (string, bool) {
	name, ok := strings.CutPrefix(param, "Env")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// SSMResource returns the SSM parameter resource backing an environment
// variable.
func SSMResource(name string) string { return "Param" + name }

// GatewayURLOutput returns the Outputs entry paired with a gateway.
func GatewayURLOutput(gateway string) string { return gateway + "Url" }

// UserPoolResource returns the Cognito user pool resource for a pool name.
func UserPoolResource(pool string) string { return pool + "UserPool" }

// UserPoolClientResource returns the app client resource for a pool name.
func UserPoolClientResource(pool string) string { return pool + "UserPoolClient" }
