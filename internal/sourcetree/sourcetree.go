// Package sourcetree mirrors the template's resource lifecycle into the
// project source tree: one folder per Lambda, one per layer, a shared
// authorizer folder and generated table query helpers under src/utils.
//
// The template file is the source of truth. Callers write the template
// first and mirror the source tree afterwards, so a failed mirror step
// leaves an orphaned folder rather than a broken template.
package sourcetree

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/samkit-io/samkit/internal/boilerplate"
)

// Synchronizer performs all source-tree reads and writes for one project.
type Synchronizer struct {
	fs   afs.Service
	root string
}

// New returns a Synchronizer rooted at projectURL. Any scheme the afs
// service understands works, including mem:// for tests.
func New(fs afs.Service, projectURL string) *Synchronizer {
	return &Synchronizer{fs: fs, root: projectURL}
}

// URL resolves a project-relative path to an absolute URL.
func (s *Synchronizer) URL(rel string) string {
	return url.Join(s.root, rel)
}

// WriteFile writes one file, creating parent folders as needed.
func (s *Synchronizer) WriteFile(ctx context.Context, rel, content string) error {
	if err := s.fs.Upload(ctx, s.URL(rel), file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// WriteFiles writes a rendered file set in order.
func (s *Synchronizer) WriteFiles(ctx context.Context, files []boilerplate.SourceFile) error {
	for _, f := range files {
		if err := s.WriteFile(ctx, f.Path, f.Content); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns the content of a project file.
func (s *Synchronizer) ReadFile(ctx context.Context, rel string) (string, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.URL(rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// Exists reports whether a project file or folder exists.
func (s *Synchronizer) Exists(ctx context.Context, rel string) (bool, error) {
	ok, err := s.fs.Exists(ctx, s.URL(rel))
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", rel, err)
	}
	return ok, nil
}

// Remove deletes a file or folder tree. Removing something that is
// already gone is not an error.
func (s *Synchronizer) Remove(ctx context.Context, rel string) error {
	ok, err := s.Exists(ctx, rel)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.fs.Delete(ctx, s.URL(rel)); err != nil {
		return fmt.Errorf("removing %s: %w", rel, err)
	}
	return nil
}

// EnsureFunction writes the handler source pair for a Lambda function.
func (s *Synchronizer) EnsureFunction(ctx context.Context, name string) error {
	return s.WriteFiles(ctx, boilerplate.Handler(name))
}

// RemoveFunction deletes a Lambda's source folder.
func (s *Synchronizer) RemoveFunction(ctx context.Context, name string) error {
	return s.Remove(ctx, boilerplate.LambdaDir(name))
}

// FunctionExists reports whether a Lambda's source folder is present.
func (s *Synchronizer) FunctionExists(ctx context.Context, name string) (bool, error) {
	return s.Exists(ctx, boilerplate.LambdaDir(name))
}

// EnsureLayer writes the source pair for a layer.
func (s *Synchronizer) EnsureLayer(ctx context.Context, name string) error {
	return s.WriteFiles(ctx, boilerplate.Layer(name))
}

// RemoveLayer deletes a layer's source folder.
func (s *Synchronizer) RemoveLayer(ctx context.Context, name string) error {
	return s.Remove(ctx, boilerplate.LayerDir(name))
}

// EnsureAuthorizer installs the Basic auth authorizer sources if absent.
// It reports whether anything was written.
func (s *Synchronizer) EnsureAuthorizer(ctx context.Context) (bool, error) {
	ok, err := s.Exists(ctx, boilerplate.AuthorizerDir)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := s.WriteFiles(ctx, boilerplate.Authorizer()); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAuthorizer deletes the authorizer source folder.
func (s *Synchronizer) RemoveAuthorizer(ctx context.Context) error {
	return s.Remove(ctx, boilerplate.AuthorizerDir)
}

// EnsureTableHandler writes the query helper pair for a table.
func (s *Synchronizer) EnsureTableHandler(ctx context.Context, table, partitionKey, sortKey string) error {
	return s.WriteFiles(ctx, boilerplate.TableHandler(table, partitionKey, sortKey))
}

// RemoveTableHandler deletes a table's query helper pair.
func (s *Synchronizer) RemoveTableHandler(ctx context.Context, table string) error {
	if err := s.Remove(ctx, boilerplate.TableHandlerPath(table)); err != nil {
		return err
	}
	return s.Remove(ctx, boilerplate.UtilsDir+"/"+table+"Handler.test.ts")
}

// InjectTableImport adds the table helper import to a Lambda's handler
// source, after the last existing import line. The edit keys on the
// import path, so injecting twice is a no-op.
func (s *Synchronizer) InjectTableImport(ctx context.Context, lambda, table string) error {
	rel := boilerplate.LambdaDir(lambda) + "/handler.ts"
	content, err := s.ReadFile(ctx, rel)
	if err != nil {
		return err
	}
	if strings.Contains(content, "'"+boilerplate.TableImportPath(table)+"'") {
		return nil
	}
	lines := strings.Split(content, "\n")
	at := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import ") {
			at = i + 1
		}
	}
	lines = append(lines[:at], append([]string{boilerplate.TableImport(table)}, lines[at:]...)...)
	return s.WriteFile(ctx, rel, strings.Join(lines, "\n"))
}

// RemoveTableImport strips the table helper import from a Lambda's
// handler source. Removing an import that is not present is a no-op.
func (s *Synchronizer) RemoveTableImport(ctx context.Context, lambda, table string) error {
	rel := boilerplate.LambdaDir(lambda) + "/handler.ts"
	content, err := s.ReadFile(ctx, rel)
	if err != nil {
		return err
	}
	marker := "'" + boilerplate.TableImportPath(table) + "'"
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if strings.Contains(line, marker) {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	return s.WriteFile(ctx, rel, strings.Join(kept, "\n"))
}
