package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
	maxBackups = 2
)

// RotatingWriter appends to a log file and rotates it when it grows past
// maxLogSize, keeping a fixed number of numbered backups.
type RotatingWriter struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	size    int64
	maxSize int64
}

// Setup opens the log file and routes the standard logger to both stdout
// and the file.
func Setup(logPath string) (*RotatingWriter, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	size := int64(0)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	rw := &RotatingWriter{
		file:    f,
		path:    logPath,
		size:    size,
		maxSize: maxLogSize,
	}

	log.SetOutput(io.MultiWriter(os.Stdout, rw))

	return rw, nil
}

func (w *RotatingWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err = w.file.Write(p)
	w.size += int64(n)

	if w.size > w.maxSize {
		w.rotate()
	}

	return n, err
}

func (w *RotatingWriter) rotate() {
	w.file.Close()

	// Shift numbered backups up, dropping the oldest
	for i := maxBackups; i >= 2; i-- {
		os.Rename(backupName(w.path, i-1), backupName(w.path, i))
	}
	os.Rename(w.path, backupName(w.path, 1))

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return
	}

	w.file = f
	w.size = 0
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
