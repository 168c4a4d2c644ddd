package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	samkit "github.com/samkit-io/samkit"
	"github.com/samkit-io/samkit/internal/editor"
)

// projectRoot resolves the --dir flag to an absolute project path.
func projectRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// newProjectEditor opens the project under dir.
func newProjectEditor(dir string) (*editor.Editor, error) {
	root, err := projectRoot(dir)
	if err != nil {
		return nil, err
	}
	return editor.New(afs.New(), root), nil
}

// templatePath returns the path of the project's template file.
func templatePath(dir string) (string, error) {
	root, err := projectRoot(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, editor.TemplateFile), nil
}

// stdinConfirm asks the user on stdin. With yes set it approves everything.
func stdinConfirm(yes bool) samkit.ConfirmFunc {
	if yes {
		return samkit.ConfirmAll
	}
	reader := bufio.NewReader(os.Stdin)
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

// parseEnvVar splits one --env KEY=VALUE argument.
func parseEnvVar(arg string) (samkit.EnvVar, error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return samkit.EnvVar{}, fmt.Errorf("invalid --env %q: expected KEY=VALUE", arg)
	}
	return samkit.EnvVar{Name: name, Value: value}, nil
}
