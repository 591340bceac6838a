package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Templates is an immutable set of parsed html templates, built once at startup.
type Templates struct {
	byName map[string]*template.Template
}

// NewTemplates parses the built-in templates and then every *.html directly in dir,
// which replaces a built-in of the same base name. An empty or missing dir is ignored.
func NewTemplates(dir string) (*Templates, error) {
	sources := make(map[string]string, len(defaultTemplates))
	for name, body := range defaultTemplates {
		sources[name] = body
	}
	if dir != "" {
		if err := readOverrides(os.DirFS(dir), sources); err != nil {
			return nil, err
		}
	}

	t := &Templates{byName: make(map[string]*template.Template, len(sources))}
	for name, body := range sources {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
		t.byName[name] = tpl
	}
	return t, nil
}

func readOverrides(fsys fs.FS, into map[string]string) error {
	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return err
	}
	for _, f := range files {
		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read template %s: %w", f, err)
		}
		into[strings.TrimSuffix(path.Base(f), ".html")] = string(body)
	}
	return nil
}

func (t *Templates) Render(templateName string, data TemplateData) (string, error) {
	tpl, ok := t.byName[templateName]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", templateName)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %q: %w", templateName, err)
	}
	return sb.String(), nil
}

func (t *Templates) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
