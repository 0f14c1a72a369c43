package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProjects() []Project {
	return []Project{
		{ID: "a", Title: "A", Tags: []string{"QA", "SQL"}},
		{ID: "b", Title: "B", Tags: []string{"ML", "NLP"}},
		{ID: "c", Title: "C", Tags: []string{"Frontend"}},
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	require.NotNil(t, r)
	assert.Equal(t, "Silmi Rahmawati", r.Profile.Name)
	require.Len(t, r.Projects, 3)
	assert.Equal(t, "qa-simrs", r.Projects[0].ID)
	assert.Equal(t, "2024", r.Projects[1].Year)
	assert.Len(t, r.Experience, 2)
	assert.Len(t, r.Skills, 5)
	assert.Len(t, r.OtherProjects, 4)
	assert.Equal(t, "rahmawatisilmi4@gmail.com", r.Profile.Links.EmailAddress())

	assert.Same(t, r, Default())
}

func TestVisibleProjects_AllReturnsEverythingInOrder(t *testing.T) {
	ps := fixtureProjects()
	got := VisibleProjects(AllTag, ps)
	assert.Equal(t, ps, got)
}

func TestVisibleProjects_OnlyMatchingTag(t *testing.T) {
	ps := fixtureProjects()
	for _, tag := range Tags(ps) {
		for _, p := range VisibleProjects(tag, ps) {
			if tag != AllTag {
				assert.True(t, p.HasTag(tag), "project %s should carry %s", p.ID, tag)
			}
		}
	}

	got := VisibleProjects("QA", ps)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestVisibleProjects_UnknownTagIsEmpty(t *testing.T) {
	got := VisibleProjects("Rust", fixtureProjects())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTags_FirstSeenOrderWithAllFirst(t *testing.T) {
	ps := fixtureProjects()
	ps = append(ps, Project{ID: "d", Tags: []string{"SQL", "Go"}})
	assert.Equal(t, []string{"All", "QA", "SQL", "ML", "NLP", "Frontend", "Go"}, Tags(ps))
}

func TestFilter_SetCycleLookup(t *testing.T) {
	f := NewFilter(fixtureProjects())
	assert.Equal(t, AllTag, f.Active())
	assert.Len(t, f.Visible(), 3)

	f.SetActiveTag("ML")
	require.Len(t, f.Visible(), 1)
	assert.Equal(t, "b", f.Visible()[0].ID)

	f.SetActiveTag("nope")
	assert.False(t, f.Known("nope"))
	assert.Empty(t, f.Visible())

	f.SetActiveTag(AllTag)
	f.Cycle(1)
	assert.Equal(t, "QA", f.Active())
	f.Cycle(-2)
	assert.Equal(t, "Frontend", f.Active())

	assert.Equal(t, "NLP", f.Lookup(" nlp "))
	assert.Equal(t, "zzz", f.Lookup("zzz"))
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte("projects:\n  - id: x\n  - id: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = Parse([]byte("projects:\n  - title: no id\n"))
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	doc := "profile:\n  name: Test Person\nprojects:\n  - id: one\n    title: One\n    tags: [Go]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Person", r.Profile.Name)

	p, err := r.Project("one")
	require.NoError(t, err)
	assert.Equal(t, "One", p.Title)

	_, err = r.Project("two")
	assert.True(t, errors.Is(err, ErrProjectNotFound))

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestCaseStudyMarkdown(t *testing.T) {
	p := Default().Projects[0]
	md := CaseStudyMarkdown(p)
	assert.True(t, strings.HasPrefix(md, "# SIMRS QA & Support Toolkit\n"))
	assert.Contains(t, md, "## Highlights")
	assert.Contains(t, md, "- Regression checklist per module")
	assert.Contains(t, md, "`Postman`")
	assert.NotContains(t, md, "[Demo]")

	p.Repo = "https://example.com/repo"
	assert.Contains(t, CaseStudyMarkdown(p), "[Repository](https://example.com/repo)")
}
