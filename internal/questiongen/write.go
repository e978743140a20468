package questiongen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/quizdeck/internal/catalog"
)

// WriteModuleFile writes qs as a module file that catalog.LoadModuleFile
// accepts. An existing file is not overwritten.
func WriteModuleFile(path, title string, qs []catalog.Question) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	b, err := json.MarshalIndent(catalog.ModuleFile{Title: title, Questions: qs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode module: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
