package checklist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

type templateFile struct {
	Templates []struct {
		Role  string `yaml:"role"`
		Title string `yaml:"title"`
		Items []Item `yaml:"items"`
	} `yaml:"templates"`
}

// LoadTemplates reads role templates from a YAML file of the form
//
//	templates:
//	  - role: employee
//	    title: Floor checklist
//	    items:
//	      - {id: "1", task: Equipment safety check, frequency: hourly}
func LoadTemplates(path string) (map[role.Role]Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist templates: %w", err)
	}
	return ParseTemplates(raw)
}

func ParseTemplates(raw []byte) (map[role.Role]Template, error) {
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse checklist templates: %w", err)
	}

	out := make(map[role.Role]Template, len(file.Templates))
	for i, t := range file.Templates {
		r, ok := role.Parse(t.Role)
		if !ok {
			return nil, fmt.Errorf("template %d: unknown role %q", i, t.Role)
		}
		if _, dup := out[r]; dup {
			return nil, fmt.Errorf("template %d: duplicate role %q", i, r)
		}
		if len(t.Items) == 0 {
			return nil, fmt.Errorf("template %d: no items", i)
		}
		seen := make(map[string]struct{}, len(t.Items))
		for _, item := range t.Items {
			if item.ID == "" || item.Task == "" {
				return nil, fmt.Errorf("template %d: items need an id and a task", i)
			}
			if !item.Frequency.Valid() {
				return nil, fmt.Errorf("template %d: item %s has frequency %q", i, item.ID, item.Frequency)
			}
			if _, dup := seen[item.ID]; dup {
				return nil, fmt.Errorf("template %d: duplicate item id %s", i, item.ID)
			}
			seen[item.ID] = struct{}{}
		}

		title := t.Title
		if title == "" {
			title = titleFor(r)
		}
		out[r] = Template{Role: r, Title: title, Items: t.Items}
	}
	return out, nil
}
