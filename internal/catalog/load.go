package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizdeck/internal/logger"
)

// Legacy manifests list modules without topics; they are wrapped in this
// topic.
const (
	DefaultTopicID   = "default"
	DefaultTopicName = "Modulos"
)

type manifest struct {
	Topics  []topicEntry  `yaml:"topics"`
	Modules []moduleEntry `yaml:"modules"`
}

type topicEntry struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	Color       string        `yaml:"color"`
	Modules     []moduleEntry `yaml:"modules"`
}

type moduleEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// ModuleFile is the on-disk shape of a module. JSON files parse as YAML.
type ModuleFile struct {
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Load reads the manifest at path and every module file it references.
// Module files are resolved relative to the manifest's directory. A missing
// module file is logged and skipped; a malformed one fails the load.
func Load(path string, log *logger.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var mf manifest
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	entries := mf.Topics
	if len(entries) == 0 && len(mf.Modules) > 0 {
		entries = []topicEntry{{
			ID:      DefaultTopicID,
			Name:    DefaultTopicName,
			Icon:    "book",
			Color:   "#667eea",
			Modules: mf.Modules,
		}}
	}

	dir := filepath.Dir(path)
	topics := make([]*Topic, 0, len(entries))
	for _, te := range entries {
		t := &Topic{
			ID:          te.ID,
			Name:        te.Name,
			Description: te.Description,
			Icon:        te.Icon,
			Color:       te.Color,
		}
		for _, me := range te.Modules {
			file := me.File
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, file)
			}
			mod, err := LoadModuleFile(file)
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("module file not found", "module", me.ID, "file", file)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("module %q: %w", me.ID, err)
			}
			name := me.Name
			if name == "" {
				name = mod.Title
			}
			t.Modules = append(t.Modules, &Module{ID: me.ID, Name: name, Questions: mod.Questions})
		}
		topics = append(topics, t)
	}

	c, err := New(topics)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", "topics", len(topics), "questions", c.QuestionCount())
	return c, nil
}

// LoadModuleFile parses and schema-validates a single module file.
func LoadModuleFile(path string) (*ModuleFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := validateModuleDoc(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var mod ModuleFile
	if err := yaml.Unmarshal(raw, &mod); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &mod, nil
}
