package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/atomic"
)

var (
	mu      sync.Mutex
	file    *os.File
	enabled atomic.Bool // checked lock-free so a disabled Log costs nothing
)

// Enable starts trace logging to ~/.config/monoseq/trace.log. Used for
// high-frequency events (pad input, LED batches) that would swamp stderr.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled.Load() {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "monoseq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, "trace.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	file = f
	enabled.Store(true)

	fmt.Fprintf(file, "[%s] %-8s trace started\n", time.Now().Format("15:04:05.000"), "debug")
	return nil
}

// Disable stops trace logging and closes the file
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	enabled.Store(false)
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes one line under a category. No-op unless Enable was called;
// the disabled path takes no lock so hot callers stay cheap.
func Log(category, format string, args ...any) {
	if !enabled.Load() {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return
	}

	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-8s %s\n", ts, category, fmt.Sprintf(format, args...))
	file.Sync() // flush so lines survive a crash
}
