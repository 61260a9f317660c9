package app

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// MERIDIAN_TEST_MODE=1 makes the binaries skip side effects (worker startup,
// scheduled tasks) so integration harnesses can drive them directly.
const testModeEnv = "MERIDIAN_TEST_MODE"

var (
	testModeFlag atomic.Bool
	testModeOnce sync.Once
)

func detectTestMode() {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	testModeFlag.Store(on)
}

// InTestMode reports whether the process runs under a test harness.
func InTestMode() bool {
	testModeOnce.Do(detectTestMode)
	return testModeFlag.Load()
}

// RefreshTestMode re-reads the environment after a test changes it.
func RefreshTestMode() {
	detectTestMode()
}
