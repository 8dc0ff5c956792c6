package components

import "github.com/quiltui/quilt"

// Register defines the example component types. Call once at startup,
// before creating instances.
func Register(reg *quilt.Registry) {
	reg.Define(
		counterDef(),
		taskListDef(),
	)
}
