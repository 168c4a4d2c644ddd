// Package boilerplate holds the embedded TypeScript and project file
// templates and renders them with per-call substitutions. Every token
// lives here so that create operations and later string-level edits
// (such as import injection) agree on the generated text.
package boilerplate

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed assets
var assets embed.FS

// Substitution tokens used inside the embedded templates.
const (
	tokenProject = "__PROJECT_NAME__"
	tokenLambda  = "__LAMBDA_NAME__"
	tokenLayer   = "__LAYER_NAME__"
	tokenTable   = "__TABLE_NAME__"
	tokenPK      = "__PK__"
	tokenSK      = "__SK__"
	tokenStage   = "__STAGE__"
)

// Layout conventions inside a generated project.
const (
	SrcDir        = "src"
	UtilsDir      = "src/utils"
	LayersRootDir = "src/layers"
	AuthorizerDir = "src/authorizer"
)

// SourceFile is one generated file, with Path relative to the project root.
type SourceFile struct {
	Path    string
	Content string
}

// LambdaDir returns the source folder of a Lambda function.
func LambdaDir(name string) string {
	return SrcDir + "/" + name
}

// LayerDir returns the source folder of a layer.
func LayerDir(name string) string {
	return LayersRootDir + "/" + name
}

// TableHandlerPath returns the query helper file of a table.
func TableHandlerPath(table string) string {
	return UtilsDir + "/" + table + "Handler.ts"
}

// TableImportPath is the module specifier a Lambda handler uses to import
// a table's query helpers. Import injection and removal key on this string.
func TableImportPath(table string) string {
	return "../utils/" + table + "Handler"
}

// TableImport returns the full import statement injected into a Lambda
// handler when a table policy is attached.
func TableImport(table string) string {
	return fmt.Sprintf("import { put%[1]s, getOne%[1]s, delete%[1]s } from '%s';",
		table, TableImportPath(table))
}

// Handler returns the source pair for a new Lambda function.
func Handler(name string) []SourceFile {
	dir := LambdaDir(name)
	return []SourceFile{
		{Path: dir + "/handler.ts", Content: render("assets/handler.ts", tokenLambda, name)},
		{Path: dir + "/handler.test.ts", Content: render("assets/handler.test.ts", tokenLambda, name)},
	}
}

// Authorizer returns the fixed Basic auth authorizer source pair.
func Authorizer() []SourceFile {
	return []SourceFile{
		{Path: AuthorizerDir + "/handler.ts", Content: render("assets/authorizer/handler.ts")},
		{Path: AuthorizerDir + "/handler.test.ts", Content: render("assets/authorizer/handler.test.ts")},
	}
}

// Layer returns the source pair for a new layer.
func Layer(name string) []SourceFile {
	dir := LayerDir(name)
	return []SourceFile{
		{Path: dir + "/index.ts", Content: render("assets/layer/index.ts", tokenLayer, name)},
		{Path: dir + "/index.test.ts", Content: render("assets/layer/index.test.ts", tokenLayer, name)},
	}
}

// TableHandler returns the query helper pair for a table. An empty sortKey
// selects the simple-key variant.
func TableHandler(table, partitionKey, sortKey string) []SourceFile {
	handler := "assets/table/simpleHandler.ts"
	if sortKey != "" {
		handler = "assets/table/compositeHandler.ts"
	}
	return []SourceFile{
		{
			Path:    TableHandlerPath(table),
			Content: render(handler, tokenTable, table, tokenPK, partitionKey, tokenSK, sortKey),
		},
		{
			Path:    UtilsDir + "/" + table + "Handler.test.ts",
			Content: render("assets/table/handler.test.ts", tokenTable, table),
		},
	}
}

// Utils returns the seed files of src/utils, the folder table query
// helpers land in later.
func Utils() []SourceFile {
	return []SourceFile{
		{Path: UtilsDir + "/response.ts", Content: render("assets/utils/response.ts")},
		{Path: UtilsDir + "/response.test.ts", Content: render("assets/utils/response.test.ts")},
	}
}

// Project returns the top-level files of a freshly scaffolded project.
func Project(projectName, stage string) []SourceFile {
	return []SourceFile{
		{Path: "package.json", Content: render("assets/project/package.json", tokenProject, projectName)},
		{Path: "tsconfig.json", Content: render("assets/project/tsconfig.json")},
		{Path: "jest.config.js", Content: render("assets/project/jest.config.js")},
		{Path: ".gitignore", Content: render("assets/project/gitignore")},
		{Path: "README.md", Content: render("assets/project/README.md", tokenProject, projectName)},
		{Path: "samconfig.toml", Content: render("assets/project/samconfig.toml", tokenProject, projectName, tokenStage, stage)},
	}
}

func render(path string, pairs ...string) string {
	data, err := assets.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("embedded template %s: %v", path, err))
	}
	if len(pairs) == 0 {
		return string(data)
	}
	return strings.NewReplacer(pairs...).Replace(string(data))
}
