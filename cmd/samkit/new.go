package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/scaffold"
)

func newNewCmd() *cobra.Command {
	var (
		dirFlag     string
		stageFlag   string
		envFlags    []string
		timeoutFlag int
	)

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Scaffold a new SAM project",
		Long: `Scaffold a new SAM project with a template, TypeScript sources and
supporting files. The project gets one Lambda function named after the
project, wired to GET / on the default gateway.

Examples:
  samkit new myapp
  samkit new myapp --stage prod
  samkit new myapp --env TABLE_REGION=us-east-1 --timeout 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args[0], dirFlag, stageFlag, envFlags, timeoutFlag)
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Parent directory for the project")
	cmd.Flags().StringVar(&stageFlag, "stage", "dev", "Deployment stage name")
	cmd.Flags().StringArrayVar(&envFlags, "env", nil, "Environment variable as KEY=VALUE (repeatable)")
	cmd.Flags().IntVar(&timeoutFlag, "timeout", 30, "Lambda timeout in seconds")

	return cmd
}

func runNew(name, dir, stage string, envFlags []string, timeout int) error {
	root, err := projectRoot(dir)
	if err != nil {
		return err
	}

	envVars := make([]samkit.EnvVar, 0, len(envFlags))
	for _, arg := range envFlags {
		v, err := parseEnvVar(arg)
		if err != nil {
			return err
		}
		envVars = append(envVars, v)
	}

	projectURL := filepath.Join(root, name)
	err = scaffold.Generate(context.Background(), afs.New(), projectURL, scaffold.Options{
		Name:    name,
		Stage:   stage,
		EnvVars: envVars,
		Timeout: timeout,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created project %s\n", projectURL)
	fmt.Println()
	fmt.Println("Files:")
	for _, f := range []string{
		"template.yaml",
		".env",
		"package.json",
		"tsconfig.json",
		"jest.config.js",
		"samconfig.toml",
		filepath.Join("src", name, "handler.ts"),
		filepath.Join("src", name, "handler.test.ts"),
		filepath.Join("src", "utils", "response.ts"),
	} {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", name)
	fmt.Println("  npm install")
	fmt.Println("  sam build && sam deploy --guided")

	return nil
}
