package crawler

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// userFolders are the common per-user folders scanned on every
// platform, relative to the home directory.
var userFolders = []string{
	"Desktop",
	"Documents",
	"Downloads",
	"Pictures",
	"Music",
	"Videos",
}

// ResolveLocations returns the de-duplicated, ordered list of root
// paths worth scanning for a platform: the home area and common user
// folders, OS-level shared locations, then every supplied volume root.
// A volume is skipped when a path it covers is already present, e.g.
// "/" on a Unix-like system or a drive letter already covered by a
// user-folder entry. Pure function of its inputs.
func ResolveLocations(platform, home string, volumes []string) []string {
	foldCase := platform == "windows" || platform == "darwin"

	var roots []string
	seen := map[string]bool{}
	add := func(path string) {
		if path == "" {
			return
		}
		key := path
		if foldCase {
			key = strings.ToLower(key)
		}
		if seen[key] {
			return
		}
		seen[key] = true
		roots = append(roots, path)
	}

	if home != "" {
		add(home)
		for _, folder := range userFolders {
			add(filepath.Join(home, folder))
		}
	}

	switch platform {
	case "darwin":
		add("/Users/Shared")
		add("/Applications")
	case "windows":
		add(`C:\Users\Public`)
	default:
		add("/usr/local/share")
	}

	for _, volume := range volumes {
		if volume == "" {
			continue
		}
		if coversAny(volume, roots, foldCase) {
			continue
		}
		add(volume)
	}

	return roots
}

// coversAny reports whether any existing root lives under the volume,
// in which case scanning the volume would duplicate it.
func coversAny(volume string, roots []string, foldCase bool) bool {
	prefix := volume
	if !strings.HasSuffix(prefix, "/") && !strings.HasSuffix(prefix, `\`) {
		prefix += string(os.PathSeparator)
	}
	if foldCase {
		prefix = strings.ToLower(prefix)
	}

	for _, root := range roots {
		candidate := root
		if foldCase {
			candidate = strings.ToLower(candidate)
		}
		if candidate == strings.TrimRight(prefix, `/\`) || strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

type hostInfo struct {
	platform string
	home     string
}

// host is computed once and cached for the process lifetime: the
// platform and home directory do not change while we run.
var host = sync.OnceValue(func() hostInfo {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return hostInfo{platform: runtime.GOOS, home: home}
})

// HostLocations resolves the scan roots for the running host, merging
// in the supplied volume roots.
func HostLocations(volumes []string) []string {
	h := host()
	return ResolveLocations(h.platform, h.home, volumes)
}
