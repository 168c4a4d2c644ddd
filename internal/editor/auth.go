package editor

import (
	"context"
	"fmt"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/template"
)

// basicAuthorizerKey names the authorizer inside a gateway's Auth block.
const basicAuthorizerKey = "BasicAuthorizer"

// AddBasicAuth puts the gateway behind the shared Basic auth authorizer,
// creating the authorizer function, its log group, and the authorizer
// sources on first use.
func (e *Editor) AddBasicAuth(ctx context.Context, gateway string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	gw, err := e.gateway(doc, gateway)
	if err != nil {
		return err
	}
	if props := template.Properties(gw); props != nil && props.Has("Auth") {
		return samkit.Conflictf("gateway %q already has auth configured", gateway)
	}
	if !doc.HasResource(samkit.BasicAuthorizerName) {
		doc.AddResource(samkit.BasicAuthorizerName, AuthorizerFunctionNode())
		doc.AddResource(samkit.LogGroupResource("BasicAuthorizer"), LogGroupNode(samkit.BasicAuthorizerName))
	}
	template.SetProperty(gw, "Auth", basicAuthNode())
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	_, err = e.tree.EnsureAuthorizer(ctx)
	return err
}

// RemoveBasicAuth deletes the gateway's Auth block. The shared authorizer
// function, its log group, and the authorizer sources go too once no other
// gateway references the authorizer.
func (e *Editor) RemoveBasicAuth(ctx context.Context, gateway string) error {
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	gw, err := e.gateway(doc, gateway)
	if err != nil {
		return err
	}
	props := template.Properties(gw)
	auth := props.Child("Auth")
	if auth == nil || !template.NodeReferences(auth, samkit.BasicAuthorizerName) {
		return samkit.NotFound("basic auth on gateway", gateway)
	}
	props.Delete("Auth")

	shared := false
	for _, api := range doc.ResourcesOfType(samkit.TypeAPI) {
		apiProps := template.Properties(doc.Resource(api))
		if apiProps == nil {
			continue
		}
		if a := apiProps.Child("Auth"); a != nil && template.NodeReferences(a, samkit.BasicAuthorizerName) {
			shared = true
			break
		}
	}
	if !shared {
		doc.RemoveResource(samkit.BasicAuthorizerName)
		doc.RemoveResource(samkit.LogGroupResource("BasicAuthorizer"))
	}
	if err := e.save(ctx, doc); err != nil {
		return err
	}
	if shared {
		return nil
	}
	return e.tree.RemoveAuthorizer(ctx)
}

// AddCognitoAuth puts the gateway behind a fresh Cognito user pool. Pools
// are never shared: every call creates its own pool, app client, and the
// outputs exposing their IDs.
func (e *Editor) AddCognitoAuth(ctx context.Context, gateway, pool string) error {
	if !samkit.ValidLogicalName(pool) {
		return fmt.Errorf("invalid pool name %q: letters and digits only, starting with a letter", pool)
	}
	doc, err := e.Load(ctx)
	if err != nil {
		return err
	}
	gw, err := e.gateway(doc, gateway)
	if err != nil {
		return err
	}
	if props := template.Properties(gw); props != nil && props.Has("Auth") {
		return samkit.Conflictf("gateway %q already has auth configured", gateway)
	}
	poolRes := samkit.UserPoolResource(pool)
	clientRes := samkit.UserPoolClientResource(pool)
	for _, name := range []string{poolRes, clientRes} {
		if doc.HasResource(name) {
			return samkit.Conflictf("resource %q already exists", name)
		}
	}
	doc.AddResource(poolRes, UserPoolNode(pool))
	doc.AddResource(clientRes, UserPoolClientNode(poolRes))
	template.SetProperty(gw, "Auth", cognitoAuthNode(pool))
	doc.AddOutput(poolRes+"Id", poolOutput("User pool ID for "+pool, poolRes))
	doc.AddOutput(clientRes+"Id", poolOutput("App client ID for "+pool, clientRes))
	return e.save(ctx, doc)
}

func basicAuthNode() *template.Node {
	identity := template.NewMap()
	identity.Set("Header", template.Scalar("Authorization"))
	authorizer := template.NewMap()
	authorizer.Set("FunctionArn", template.GetAtt(samkit.BasicAuthorizerName+".Arn"))
	authorizer.Set("Identity", identity)
	authorizers := template.NewMap()
	authorizers.Set(basicAuthorizerKey, authorizer)
	auth := template.NewMap()
	auth.Set("DefaultAuthorizer", template.Scalar(basicAuthorizerKey))
	auth.Set("Authorizers", authorizers)
	return auth
}

func cognitoAuthNode(pool string) *template.Node {
	name := pool + "CognitoAuthorizer"
	authorizer := template.NewMap()
	authorizer.Set("UserPoolArn", template.GetAtt(samkit.UserPoolResource(pool)+".Arn"))
	authorizers := template.NewMap()
	authorizers.Set(name, authorizer)
	auth := template.NewMap()
	auth.Set("DefaultAuthorizer", template.Scalar(name))
	auth.Set("Authorizers", authorizers)
	return auth
}

func poolOutput(description, resource string) *template.Node {
	out := template.NewMap()
	out.Set("Description", template.Scalar(description))
	out.Set("Value", template.Ref(resource))
	return out
}
