// Package content holds the studio's project and service listings. The
// data ships embedded as YAML.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Project status values.
const (
	StatusDeployed  = "deployed"
	StatusPrototype = "prototype"
)

// CategoryAll selects every project in GetProjectsByCategory.
const CategoryAll = "all"

// Tech is one entry of a project's technology stack.
type Tech struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // #rrggbb
}

// Screenshot is one image in a project's gallery.
type Screenshot struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

// Project is a portfolio entry.
type Project struct {
	ID           string       `yaml:"id"`
	Title        string       `yaml:"title"`
	Subtitle     string       `yaml:"subtitle"`
	Status       string       `yaml:"status"`
	Category     string       `yaml:"category"`
	Featured     bool         `yaml:"featured"`
	Thumbnail    string       `yaml:"thumbnail"`
	Problem      string       `yaml:"problem"`
	Description  string       `yaml:"description"`
	Features     []string     `yaml:"features"`
	TechStack    []Tech       `yaml:"tech_stack"`
	Screenshots  []Screenshot `yaml:"screenshots"`
	DemoLink     string       `yaml:"demo_link"`
	Architecture string       `yaml:"architecture"`
	Hackathon    string       `yaml:"hackathon"`
	Team         string       `yaml:"team"`
}

// Service is an offering listed on the home page.
type Service struct {
	ID          string   `yaml:"id"`
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	TechStack   []string `yaml:"tech_stack"`
}

// Catalog answers lookups over a fixed set of projects and services.
type Catalog struct {
	projects []Project
	services []Service
}

// ErrDuplicateID is returned by Load when two entries share an ID.
var ErrDuplicateID = errors.New("duplicate id")

// Load reads projects.yaml and services.yaml from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var c Catalog
	if err := decodeFile(fsys, "projects.yaml", &c.projects); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, "services.yaml", &c.services); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(c.projects))
	for _, p := range c.projects {
		if p.ID == "" {
			return nil, fmt.Errorf("projects.yaml: project %q has no id", p.Title)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("projects.yaml: %w %q", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	return &c, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Projects returns every project in listing order.
func (c *Catalog) Projects() []Project {
	return c.projects
}

// Services returns every service in listing order.
func (c *Catalog) Services() []Service {
	return c.services
}

// GetProjectByID returns the project with id.
func (c *Catalog) GetProjectByID(id string) (Project, bool) {
	for _, p := range c.projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// GetFeaturedProjects returns the projects marked featured.
func (c *Catalog) GetFeaturedProjects() []Project {
	var out []Project
	for _, p := range c.projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// GetProjectsByCategory filters by category. An empty category or
// CategoryAll returns every project.
func (c *Catalog) GetProjectsByCategory(category string) []Project {
	if category == "" || category == CategoryAll {
		return c.projects
	}
	var out []Project
	for _, p := range c.projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct project categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range c.projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// GetServiceByID returns the service with id.
func (c *Catalog) GetServiceByID(id string) (Service, bool) {
	for _, s := range c.services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
