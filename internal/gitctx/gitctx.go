package gitctx

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/ktlens/ktlens/internal/ignore"
)

// File is one gathered source file: a repo-relative path plus raw bytes.
type File struct {
	Path string
	Data []byte
}

// Result holds the gathered corpus and how it was produced.
type Result struct {
	Files []File
	Mode  string
	Root  string
}

// IgnoreFile is looked up at the gather root.
const IgnoreFile = ".ktlensignore"

const maxFileBytes = 1 << 20

// Gather collects Kotlin source files for a run. With an empty target it
// returns files changed in the working tree relative to HEAD (the
// "review what I just touched" default); with a target path it walks the
// whole tree. Exclude patterns use gitignore syntax and stack on top of
// the target's .ktlensignore.
func Gather(target string, exclude []string) (Result, error) {
	if target == "" {
		return Changed(exclude)
	}
	return WalkTree(target, exclude)
}

// Changed returns worktree files that differ from HEAD, including
// untracked files, filtered to Kotlin sources.
func Changed(exclude []string) (Result, error) {
	repo, err := gogit.PlainOpenWithOptions(".", &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Result{}, fmt.Errorf("not a git repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return Result{}, fmt.Errorf("reading worktree status: %w", err)
	}

	root := wt.Filesystem.Root()
	ign, _ := ignore.Load(filepath.Join(root, IgnoreFile))
	extra := ignore.FromPatterns(exclude)

	var paths []string
	for path, st := range status {
		if st.Worktree == gogit.Unmodified && st.Staging == gogit.Unmodified {
			continue
		}
		if st.Worktree == gogit.Deleted || st.Staging == gogit.Deleted {
			continue
		}
		if !isKotlin(path) || ign.Match(path) || extra.Match(path) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	res := Result{Mode: "changed", Root: root}
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(root, p))
		if err != nil || int64(len(data)) > maxFileBytes {
			continue
		}
		res.Files = append(res.Files, File{Path: p, Data: data})
	}
	return res, nil
}

// WalkTree gathers every Kotlin file under root, skipping build output
// and ignored paths.
func WalkTree(root string, exclude []string) (Result, error) {
	ign, _ := ignore.Load(filepath.Join(root, IgnoreFile))
	extra := ignore.FromPatterns(exclude)

	res := Result{Mode: "tree", Root: root}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") && name != "." || name == "build" || name == "node_modules" {
				if p != root {
					return filepath.SkipDir
				}
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !isKotlin(rel) || ign.Match(rel) || extra.Match(rel) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil || info.Size() > maxFileBytes {
			return nil
		}
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return nil
		}
		res.Files = append(res.Files, File{Path: rel, Data: data})
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Path < res.Files[j].Path })
	return res, nil
}

func isKotlin(path string) bool {
	return strings.HasSuffix(path, ".kt") || strings.HasSuffix(path, ".kts")
}
