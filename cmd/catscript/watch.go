package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runWatch processes files once, then again each time one of them is
// written, created or renamed, until ctx is done. The parent directories are
// watched so that editors replacing a file are noticed. If ready is not nil
// it is closed once the watcher is installed.
func (c *command) runWatch(ctx context.Context, files []string, ready chan<- struct{}) int {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(c.stderr, "error: watch: %v\n", err)
		return exitError
	}
	defer w.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fmt.Fprintf(c.stderr, "error: watch: %v\n", err)
			return exitUsage
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := w.Add(dir); err != nil {
				fmt.Fprintf(c.stderr, "error: watch %s: %v\n", dir, err)
				return exitError
			}
			dirs[dir] = true
		}
	}

	code := c.runFiles(files)
	if ready != nil {
		close(ready)
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return code
		case ev, ok := <-w.Events:
			if !ok {
				return code
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] || ev.Op&relevant == 0 {
				continue
			}
			fmt.Fprintf(c.stderr, "--- %s changed\n", ev.Name)
			code = c.runFiles(files)
		case err, ok := <-w.Errors:
			if !ok {
				return code
			}
			fmt.Fprintf(c.stderr, "error: watch: %v\n", err)
		}
	}
}
