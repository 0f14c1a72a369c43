package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultDocument []byte

var ErrProjectNotFound = errors.New("project not found")

type Links struct {
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	GitHub   string `yaml:"github" json:"github"`
	CV       string `yaml:"cv" json:"cv"`
}

// EmailAddress is the contact address without the mailto: scheme.
func (l Links) EmailAddress() string {
	return strings.TrimPrefix(strings.TrimSpace(l.Email), "mailto:")
}

type Fact struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Role     string   `yaml:"role" json:"role"`
	Location string   `yaml:"location" json:"location"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
	Summary  string   `yaml:"summary" json:"summary"`
	Links    Links    `yaml:"links" json:"links"`
	Badges   []string `yaml:"badges,omitempty" json:"badges,omitempty"`
	Facts    []Fact   `yaml:"facts,omitempty" json:"facts,omitempty"`
}

type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Year        string   `yaml:"year" json:"year"`
	Tags        []string `yaml:"tags" json:"tags"`
	Highlight   string   `yaml:"highlight" json:"highlight"`
	Description string   `yaml:"description" json:"description"`
	Bullets     []string `yaml:"bullets" json:"bullets"`
	Stack       []string `yaml:"stack" json:"stack"`
	Demo        string   `yaml:"demo,omitempty" json:"demo,omitempty"`
	Repo        string   `yaml:"repo,omitempty" json:"repo,omitempty"`
}

type Experience struct {
	Time   string   `yaml:"time" json:"time"`
	Title  string   `yaml:"title" json:"title"`
	Org    string   `yaml:"org" json:"org"`
	Points []string `yaml:"points" json:"points"`
}

type Skill struct {
	Name string `yaml:"name" json:"name"`
	// Level is a percentage in [0, 100].
	Level int `yaml:"level" json:"level"`
}

type OtherProject struct {
	Title string `yaml:"title" json:"title"`
	Tech  string `yaml:"tech" json:"tech"`
	Note  string `yaml:"note" json:"note"`
}

// Registry is the portfolio content. It is built once at startup and treated as
// read-only afterwards; callers must not mutate the slices it exposes.
type Registry struct {
	Profile       Profile        `yaml:"profile" json:"profile"`
	Projects      []Project      `yaml:"projects" json:"projects"`
	Experience    []Experience   `yaml:"experience" json:"experience"`
	Skills        []Skill        `yaml:"skills" json:"skills"`
	OtherProjects []OtherProject `yaml:"other_projects" json:"otherProjects"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry compiled into the binary.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultDocument)
		if err != nil {
			panic(fmt.Sprintf("content: embedded portfolio.yaml: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Load reads a registry from path, or returns Default when path is empty.
func Load(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	return r, nil
}

func Parse(b []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var r Registry
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(r.Projects))
	for i, p := range r.Projects {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("project %d: empty id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("project %q: duplicate id", id)
		}
		seen[id] = true
		r.Projects[i].ID = id
	}
	return &r, nil
}

func (r *Registry) Project(id string) (Project, error) {
	id = strings.TrimSpace(id)
	for _, p := range r.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}
