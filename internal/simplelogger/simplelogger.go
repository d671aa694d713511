package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"
)

// EnvVar names the environment variable that selects the log file.
const EnvVar = "ROTLABEL_LOG_FILE"

var (
	mu           sync.Mutex
	overridePath string
)

// SetPath makes Log write to path instead of the file named by ROTLABEL_LOG_FILE. Passing "" restores the environment variable lookup.
func SetPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	overridePath = path
}

// Log is a minimal printf-style logger. It appends one timestamped line to the file set with SetPath, or else to the file named by ROTLABEL_LOG_FILE.
//
// If no path is configured or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	path := overridePath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	b.WriteString(time.Now().Format("15:04:05.000 "))
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
