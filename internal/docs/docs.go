// Package docs holds the embedded help pages behind `ganttsync docs`.
package docs

import (
	"embed"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one help page. Registry order is display order: the schedule
// model first, workspace mechanics after.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

var registry = []Topic{
	{Name: "schedule", Title: "Schedules: task types, links, rollups, saving"},
	{Name: "workspaces", Title: "Workspaces, config and the database"},
}

// Topics returns the help pages in display order.
func Topics() []Topic {
	out := make([]Topic, len(registry))
	copy(out, registry)
	return out
}

// Get returns the markdown body for a topic name. Only registered topics
// resolve; the embed FS is never probed for arbitrary names.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range registry {
		if t.Name != name {
			continue
		}
		b, err := contentFS.ReadFile("content/" + t.Name + ".md")
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	return "", false
}
