// Package envfile reads .env files and exposes the variables a project
// can wire into its Lambda functions.
package envfile

import (
	"fmt"
	"strings"

	samkit "github.com/samkit-io/samkit"
)

// StageKey is reserved for the deployment stage name and never becomes a
// wirable variable.
const StageKey = "ENVIRONMENT"

// DefaultStage is used when the file does not set StageKey.
const DefaultStage = "dev"

// File is the parsed content of a .env file.
type File struct {
	// Stage is the deployment stage name taken from the reserved
	// ENVIRONMENT key, or DefaultStage when absent.
	Stage string

	// Vars holds the wirable variables in file order, ENVIRONMENT excluded.
	// A key repeated later in the file keeps its first position but takes
	// the last value.
	Vars []samkit.EnvVar
}

// Parse reads KEY=value lines. Blank lines and lines starting with '#'
// are ignored. Surrounding single or double quotes on values are stripped
// when they match.
func Parse(data []byte) (*File, error) {
	f := &File{Stage: DefaultStage}
	index := map[string]int{}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			return nil, fmt.Errorf(".env line %d: missing '='", i+1)
		}
		key := strings.TrimSpace(trimmed[:eq])
		if key == "" {
			return nil, fmt.Errorf(".env line %d: empty key", i+1)
		}
		value := unquote(strings.TrimSpace(trimmed[eq+1:]))
		if key == StageKey {
			f.Stage = value
			continue
		}
		if at, seen := index[key]; seen {
			f.Vars[at].Value = value
			continue
		}
		index[key] = len(f.Vars)
		f.Vars = append(f.Vars, samkit.EnvVar{Name: key, Value: value})
	}
	return f, nil
}

// Lookup returns the value of a wirable variable.
func (f *File) Lookup(name string) (string, bool) {
	for _, v := range f.Vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Names returns the wirable variable names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Vars))
	for i, v := range f.Vars {
		names[i] = v.Name
	}
	return names
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
