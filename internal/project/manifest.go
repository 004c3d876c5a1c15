package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the well-known project manifest name, read once per
// invocation; nothing derived from it is cached to disk between runs.
const ManifestFile = "jacy.toml"

// ErrPackageSectionMissing indicates a manifest has no [package] table.
var ErrPackageSectionMissing = errors.New("missing [package]")

// ErrPackageRootMissing indicates [package].root is absent or empty.
var ErrPackageRootMissing = errors.New("missing [package].root")

// PackageManifest is the decoded [package] table of a jacy.toml.
type PackageManifest struct {
	Name string
	Root string
	NoStd bool
}

type manifestDoc struct {
	Package struct {
		Name  string `toml:"name"`
		Root  string `toml:"root"`
		NoStd bool   `toml:"no_std"`
	} `toml:"package"`
}

// LoadPackageManifest parses a jacy.toml's [package] table.
func LoadPackageManifest(path string) (PackageManifest, error) {
	var doc manifestDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return PackageManifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return PackageManifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	root := strings.TrimSpace(doc.Package.Root)
	if !meta.IsDefined("package", "root") || root == "" {
		return PackageManifest{}, fmt.Errorf("%s: %w", path, ErrPackageRootMissing)
	}
	return PackageManifest{
		Name:  strings.TrimSpace(doc.Package.Name),
		Root:  root,
		NoStd: doc.Package.NoStd,
	}, nil
}

// FindManifest walks up from startDir looking for jacy.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFile)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindRoot returns the directory containing the nearest jacy.toml, if any.
func FindRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// ResolvePackageRoot resolves and validates a [package].root entry relative
// to the manifest's own directory.
func ResolvePackageRoot(manifestDir, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", ErrPackageRootMissing
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [package].root %q: must be relative", root)
	}
	clean := filepath.Clean(filepath.FromSlash(root))
	if clean == "." {
		clean = ""
	}
	rootPath := filepath.Join(manifestDir, clean)
	if !pathWithin(manifestDir, rootPath) {
		return "", fmt.Errorf("invalid [package].root %q: escapes manifest directory", root)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("invalid [package].root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [package].root %q: not a directory", root)
	}
	return rootPath, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..") && rel != ".."
}
