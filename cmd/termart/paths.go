package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrPathExpansion indicates an argument that could not be expanded into
// image paths.
var ErrPathExpansion = errors.New("expand input paths")

var imageExts = []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}

// expandPaths turns the command arguments into an ordered list of image
// paths. Glob patterns are expanded and directories are replaced by their
// image files, sorted by name. Other paths are kept as given so that missing
// files surface as decode errors during playback.
func expandPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		expanded, err := expandArg(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPathExpansion, err)
		}

		paths = append(paths, expanded...)
	}

	return paths, nil
}

func expandArg(arg string) ([]string, error) {
	matches := []string{arg}

	if strings.ContainsAny(arg, `*?[`) {
		var err error

		matches, err = filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no matches", arg)
		}
	}

	var out []string

	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			out = append(out, m)
			continue
		}

		imgs, err := imagesInDir(m)
		if err != nil {
			return nil, err
		}

		out = append(out, imgs...)
	}

	return out, nil
}

// imagesInDir lists the image files directly inside dir, sorted by name.
func imagesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || !isImage(e) {
			continue
		}

		names = append(names, e.Name())
	}

	slices.Sort(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}

func isImage(e fs.DirEntry) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(e.Name())))
}
