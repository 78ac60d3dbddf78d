package source

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverProjects lists the project directories directly under the
// projects root. Symlinked directories are followed; regular files are
// ignored. The caller decides how to treat a missing root.
func DiscoverProjects(root string) ([]ProjectDir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []ProjectDir
	for _, e := range entries {
		full := filepath.Join(root, e.Name())
		if !e.IsDir() {
			// ReadDir does not resolve symlinks; stat does.
			info, statErr := os.Stat(full)
			if statErr != nil || !info.IsDir() {
				continue
			}
		}
		dirs = append(dirs, ProjectDir{
			Name: e.Name(),
			Dir:  full,
			Path: DecodeProjectPath(e.Name()),
		})
	}
	return dirs, nil
}

// ListSessionFiles returns the .jsonl session files directly inside a
// project directory, as full paths sorted by filename. Other files and
// nested directories are ignored.
func ListSessionFiles(projectDir string) ([]string, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		files = append(files, filepath.Join(projectDir, e.Name()))
	}
	return files, nil
}

// DecodeProjectPath rebuilds a workspace path from the encoded
// directory name. Claude Code encodes absolute paths by replacing "/"
// with "-", so:
//
//	"-Users-alice-code-myapp" -> "/Users/alice/code/myapp"
//
// Dashes that were part of the original path segments are
// indistinguishable from separators, so the result is best effort.
func DecodeProjectPath(dirName string) string {
	if !strings.HasPrefix(dirName, "-") {
		return dirName
	}
	return "/" + strings.ReplaceAll(strings.TrimPrefix(dirName, "-"), "-", "/")
}

// SessionIDFromFilename derives the fallback session identifier from a
// session log path by stripping the extension.
func SessionIDFromFilename(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}
