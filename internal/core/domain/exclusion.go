package domain

import (
	"path/filepath"
	"strings"
)

// junkFiles are well-known OS metadata and system files that are never
// worth indexing. Matched case-insensitively against the base name.
var junkFiles = map[string]bool{
	".ds_store":       true,
	"thumbs.db":       true,
	"desktop.ini":     true,
	"iconcache.db":    true,
	"hiberfil.sys":    true,
	"pagefile.sys":    true,
	"swapfile.sys":    true,
	"ntuser.dat":      true,
	"ntuser.dat.log1": true,
	"ntuser.dat.log2": true,
	"usrclass.dat":    true,
	".localized":      true,
}

// noiseDirs are directories whose contents are machine-managed noise:
// version-control metadata, dependency and build caches, recycle and
// recovery areas, and vendor driver drops. Matched case-insensitively
// against every path segment.
var noiseDirs = map[string]bool{
	".git":                      true,
	".svn":                      true,
	".hg":                       true,
	"node_modules":              true,
	"bower_components":          true,
	"__pycache__":               true,
	".cache":                    true,
	".npm":                      true,
	".gradle":                   true,
	".m2":                       true,
	".cargo":                    true,
	".tox":                      true,
	".venv":                     true,
	"$recycle.bin":              true,
	"system volume information": true,
	"recovery":                  true,
	"$windows.~bt":              true,
	"windows.old":               true,
	".trash":                    true,
	".trashes":                  true,
	".spotlight-v100":           true,
	".fseventsd":                true,
	"nvidia":                    true,
	"amd":                       true,
	"intel":                     true,
}

// ShouldExclude reports whether a path must be skipped by the crawler.
// Two independent checks, either of which excludes: an exact
// case-insensitive match of the base name against the junk file set,
// and a case-insensitive match of any path segment against the noise
// directory set. Safe on any input, including a bare filename with no
// separator.
func ShouldExclude(path string) bool {
	if path == "" {
		return false
	}

	if junkFiles[strings.ToLower(filepath.Base(path))] {
		return true
	}

	for _, segment := range strings.FieldsFunc(path, isPathSeparator) {
		if noiseDirs[strings.ToLower(segment)] {
			return true
		}
	}
	return false
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
