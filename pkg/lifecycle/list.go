package lifecycle

import (
	"fmt"
	"os"
	"sort"
)

// List enumerates the instance records under a root state directory.
// A subdirectory counts as an application state directory when it
// contains a PID or URL file named after itself; unrelated
// directories sharing the root are skipped. Like Status, this
// inspects persisted state only.
func List(root string) ([]Status, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state root %s: %w", root, err)
	}

	var statuses []Status
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		app := entry.Name()
		dir := StateDir{Root: root, App: app}

		if !fileExists(dir.PIDPath()) && !fileExists(dir.URLPath()) {
			continue
		}

		store := NewStore(dir)
		st := Status{App: app, StateDir: dir.Dir()}
		pid, okPID := store.ReadPID()
		url, okURL := store.ReadURL()
		if okPID {
			st.PID = pid
		}
		if okURL {
			st.URL = url
		}
		st.Running = okPID && okURL
		if st.Running {
			if info, err := os.Stat(dir.PIDPath()); err == nil {
				st.Since = info.ModTime()
			}
		}
		statuses = append(statuses, st)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].App < statuses[j].App
	})

	return statuses, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
