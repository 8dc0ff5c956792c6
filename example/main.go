package main

import (
	"fmt"
	"log"

	"github.com/quiltui/quilt"
	"github.com/quiltui/quilt/example/components"
	"github.com/quiltui/quilt/lib/dom"
)

func main() {
	reg := quilt.NewRegistry()
	components.Register(reg)
	doc := dom.NewDocument()

	// In production, use a real secret.
	enc, err := quilt.NewEncoder([]byte("example-key-must-be-32-bytes!!"))
	if err != nil {
		log.Fatal(err)
	}

	counter, err := components.NewCounter(reg, doc, quilt.Config{
		ID:      "demo-counter",
		Encoder: enc,
		Attrs:   map[string]any{"label": "Clicks"},
	})
	if err != nil {
		log.Fatal(err)
	}

	tasks, err := components.NewTaskList(reg, doc, quilt.Config{
		ID: "demo-tasks",
		Attrs: map[string]any{
			"tasks": []string{"write docs", "review patch", "ship release"},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := counter.Render(nil, nil); err != nil {
		log.Fatal(err)
	}
	if err := tasks.Render(nil, nil); err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- initial render ---")
	fmt.Println(doc.HTML())

	// Simulate three clicks on the increment button, then narrow the task
	// filter. Only the affected surfaces re-render.
	incButton := counter.SurfaceElement("controls").Children()[1]
	for i := 0; i < 3; i++ {
		doc.Dispatch(incButton, "click", nil)
	}
	if err := tasks.Attrs().Set("filter", "re"); err != nil {
		log.Fatal(err)
	}

	// Snapshot the counter state so a later Decorate can resume from it.
	if err := counter.SaveState(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- after interaction ---")
	fmt.Println(doc.HTML())
}
