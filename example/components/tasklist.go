package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/quiltui/quilt"
	"github.com/quiltui/quilt/lib/attrs"
	"github.com/quiltui/quilt/lib/dom"
)

// TaskList renders a filterable list of tasks. The summary surface goes
// through templ to show non-string surface content.
type TaskList struct {
	*quilt.Component
}

// NewTaskList creates a task list in the given document.
func NewTaskList(reg *quilt.Registry, doc *dom.Document, cfg quilt.Config) (*TaskList, error) {
	c, err := quilt.New(reg, "tasklist", doc, cfg)
	if err != nil {
		return nil, err
	}
	w := &TaskList{Component: c}
	c.Bind(w)
	return w, nil
}

func (w *TaskList) tasks() []string {
	v, _ := w.Attrs().Get("tasks")
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (w *TaskList) filter() string {
	v, _ := w.Attrs().Get("filter")
	f, _ := v.(string)
	return f
}

func (w *TaskList) visible() []string {
	filter := strings.ToLower(w.filter())
	var out []string
	for _, task := range w.tasks() {
		if filter == "" || strings.Contains(strings.ToLower(task), filter) {
			out = append(out, task)
		}
	}
	return out
}

// SurfaceContent renders the list and its summary line.
func (w *TaskList) SurfaceContent(id string) any {
	switch id {
	case "items":
		var sb strings.Builder
		for _, task := range w.visible() {
			sb.WriteString("<li>")
			sb.WriteString(task)
			sb.WriteString("</li>")
		}
		return sb.String()
	case "summary":
		return summaryLine(len(w.visible()), len(w.tasks()))
	}
	return nil
}

func summaryLine(visible, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, wr io.Writer) error {
		_, err := fmt.Fprintf(wr, "<em>%d of %d tasks</em>", visible, total)
		return err
	})
}

func taskListDef() quilt.Def {
	return quilt.Def{
		Name:       "tasklist",
		TagName:    "section",
		SurfaceTag: "ul",
		Classes:    []string{"tasklist"},
		Attrs: []attrs.Def{
			{Name: "tasks", Value: []string(nil)},
			{Name: "filter", Value: ""},
		},
		Surfaces: map[string]quilt.SurfaceConfig{
			"items":   {RenderAttrs: []string{"tasks", "filter"}},
			"summary": {RenderAttrs: []string{"tasks", "filter"}},
		},
	}
}
