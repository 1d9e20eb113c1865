package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/specialistvlad/datamodule/internal/app"
	"github.com/specialistvlad/datamodule/internal/entity"
)

// HarnessResult holds the outcomes of a load test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunLoadTest writes files into a fresh data directory, builds an App over it
// with the given class modules (the compiled-in ones when none are given)
// and loads every data module, Base.rte first when present.
func RunLoadTest(t *testing.T, files map[string]string, modules ...entity.Module) *HarnessResult {
	t.Helper()

	dataPath := WriteFiles(t, files)
	var core []string
	if _, ok := files["Base.rte/Index.hcl"]; ok {
		core = []string{"Base.rte"}
	} else {
		core = []string{}
	}

	cfg, err := app.NewConfig(app.Config{
		DataPath:    dataPath,
		CoreModules: core,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	if err != nil {
		return &HarnessResult{Err: err}
	}

	logBuffer := &SafeBuffer{}
	t.Cleanup(func() { dumpLogs(t, logBuffer) })

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("BGGO_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(context.Background(), logBuffer, cfg, modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.LoadModules()
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
