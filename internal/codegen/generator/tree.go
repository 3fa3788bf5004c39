package generator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Prepare removes the previous backup and generated subtree, then snapshots
// the include tree into the backup directory.
func (g *Generator) Prepare() error {
	genDir := filepath.Join(g.opts.IncludeDir, g.opts.GenSubdir)

	if err := os.RemoveAll(g.opts.BackupDir); err != nil {
		return fmt.Errorf("remove backup %s: %w", g.opts.BackupDir, err)
	}
	if err := os.RemoveAll(genDir); err != nil {
		return fmt.Errorf("remove generated tree %s: %w", genDir, err)
	}

	g.logger.Debug("Backing up include tree", "from", g.opts.IncludeDir, "to", g.opts.BackupDir)
	if err := os.CopyFS(g.opts.BackupDir, os.DirFS(g.opts.IncludeDir)); err != nil {
		return fmt.Errorf("back up %s to %s: %w", g.opts.IncludeDir, g.opts.BackupDir, err)
	}
	return nil
}

// Discover returns every file under root ending in ext, skipping the
// generated subtree root/genSubdir. Paths are returned in lexical order.
func Discover(root, genSubdir, ext string) ([]string, error) {
	genDir := ""
	if genSubdir != "" {
		genDir = filepath.Clean(filepath.Join(root, genSubdir))
	}

	var headers []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if genDir != "" && filepath.Clean(p) == genDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			headers = append(headers, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover headers under %s: %w", root, err)
	}
	return headers, nil
}
