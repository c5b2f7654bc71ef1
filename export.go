package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Zachkp/folio/internal/page"
)

// exportSite writes index.html and the static assets under dir, laid out
// the way the server serves them.
func exportSite(dir string, p *page.Page) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := p.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	static := page.Static()
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, "static", filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
