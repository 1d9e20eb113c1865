// Package script defines how the loader hands script files to a scripting
// engine. The engine itself lives outside this module.
package script

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/specialistvlad/datamodule/internal/ctxlog"
	"github.com/specialistvlad/datamodule/internal/fsutil"
)

// Runner runs one script file. Paths are data-relative, e.g.
// "Base.rte/Scripts/Global.lua".
type Runner interface {
	RunScriptFile(ctx context.Context, path string) error
}

// FileRunner is the engine used when no real scripting engine is attached:
// it checks that each script exists under the data root and logs it.
type FileRunner struct {
	DataPath string
}

// RunScriptFile implements Runner.
func (r FileRunner) RunScriptFile(ctx context.Context, path string) error {
	full := filepath.Join(r.DataPath, filepath.FromSlash(path))
	if !fsutil.Exists(full) {
		return fmt.Errorf("script file %q not found", path)
	}
	ctxlog.FromContext(ctx).Debug("Script file accepted.", "path", path)
	return nil
}

// Recorder remembers every script it is asked to run. Paths listed in Fail
// return an error. It is safe for concurrent use.
type Recorder struct {
	Fail map[string]error

	mu  sync.Mutex
	ran []string
}

// RunScriptFile implements Runner.
func (r *Recorder) RunScriptFile(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, path)
	return r.Fail[path]
}

// Ran returns the scripts run so far, in order.
func (r *Recorder) Ran() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ran))
	copy(out, r.ran)
	return out
}
