// Package canon holds the canonical writing standards for the documentation
// corpus: one canon per documentation category, each with a required section
// outline and a default access classification. The canon bodies are Markdown
// documents embedded into the binary so the CLI can render them anywhere
// without a checkout of the corpus.
package canon

import (
	"embed"
	"fmt"
	"sort"

	"github.com/charmbracelet/glamour"
)

//go:embed assets/*.md
var corpusFS embed.FS

// Canon is one writing standard.
type Canon struct {
	ID          string
	Title       string
	DocType     string
	AccessLevel AccessLevel

	// Section headings a conforming document must contain. Matched
	// case-insensitively against the document outline.
	RequiredSections []string
}

// Registry indexes the canons by ID.
type Registry struct {
	canons map[string]*Canon
	order  []string
}

// DefaultRegistry returns the built-in canon set.
func DefaultRegistry() *Registry {
	r := &Registry{canons: make(map[string]*Canon)}

	for _, c := range []*Canon{
		{
			ID:               "rest-api",
			Title:            "REST API Documentation Canon",
			DocType:          "api",
			AccessLevel:      AccessInternal,
			RequiredSections: []string{"Overview", "Authentication", "Endpoints", "Error Handling"},
		},
		{
			ID:               "graphql",
			Title:            "GraphQL Documentation Canon",
			DocType:          "api",
			AccessLevel:      AccessInternal,
			RequiredSections: []string{"Overview", "Schema", "Queries", "Mutations"},
		},
		{
			ID:               "grpc",
			Title:            "gRPC Documentation Canon",
			DocType:          "api",
			AccessLevel:      AccessInternal,
			RequiredSections: []string{"Overview", "Services", "Messages", "Errors"},
		},
		{
			ID:               "deployment",
			Title:            "Deployment Guide Canon",
			DocType:          "operations",
			AccessLevel:      AccessRestricted,
			RequiredSections: []string{"Overview", "Prerequisites", "Procedure", "Rollback"},
		},
		{
			ID:               "security",
			Title:            "Security Policy Canon",
			DocType:          "policy",
			AccessLevel:      AccessRestricted,
			RequiredSections: []string{"Overview", "Scope", "Controls", "Incident Response"},
		},
		{
			ID:               "compliance",
			Title:            "Compliance Checklist Canon",
			DocType:          "policy",
			AccessLevel:      AccessConfidential,
			RequiredSections: []string{"Overview", "Checklist", "Evidence", "Sign-off"},
		},
	} {
		r.canons[c.ID] = c
		r.order = append(r.order, c.ID)
	}

	sort.Strings(r.order)
	return r
}

// Get returns the canon with the given ID.
func (r *Registry) Get(id string) (*Canon, bool) {
	c, ok := r.canons[id]
	return c, ok
}

// List returns all canons sorted by ID.
func (r *Registry) List() []*Canon {
	out := make([]*Canon, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.canons[id])
	}
	return out
}

// Body returns the embedded Markdown source for a canon.
func (r *Registry) Body(id string) (string, error) {
	if _, ok := r.canons[id]; !ok {
		return "", fmt.Errorf("unknown canon %q", id)
	}
	data, err := corpusFS.ReadFile("assets/" + id + ".md")
	if err != nil {
		return "", fmt.Errorf("canon %s has no embedded body: %w", id, err)
	}
	return string(data), nil
}

// Render returns the canon body rendered for the terminal.
func (r *Registry) Render(id string) (string, error) {
	body, err := r.Body(id)
	if err != nil {
		return "", err
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("renderer: %w", err)
	}
	return tr.Render(body)
}
