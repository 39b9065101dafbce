package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Library holds the prompt templates for a directory, keyed by file stem.
// A file etc/prompts/inventory.tmpl is available as "inventory".
type Library struct {
	dir       string
	templates map[string]*Template
}

// LoadLibrary parses every *.tmpl file under dir.
func LoadLibrary(dir string, funcs template.FuncMap) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read prompt dir %q: %w", dir, err)
	}

	lib := &Library{
		dir:       dir,
		templates: make(map[string]*Template),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := NewTemplate(filepath.Join(dir, entry.Name()), funcs)
		if err != nil {
			return nil, err
		}
		lib.templates[name] = tmpl
	}
	if len(lib.templates) == 0 {
		return nil, fmt.Errorf("prompt dir %q contains no templates", dir)
	}
	return lib, nil
}

// Get returns the template registered under name.
func (l *Library) Get(name string) (*Template, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return nil, fmt.Errorf("prompt %q not found in %s", name, l.dir)
	}
	return tmpl, nil
}

// Render looks up name and executes it against data.
func (l *Library) Render(name string, data any) (string, error) {
	tmpl, err := l.Get(name)
	if err != nil {
		return "", err
	}
	return tmpl.Render(data)
}

// Names lists the registered template names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	return names
}
