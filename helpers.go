package quilt

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// RenderToString renders a templ component to a string.
//
// Surface content returned as a templ.Component is never cached (its
// output cannot be compared without rendering). Widgets that want
// fingerprint-based re-render suppression render their template up front
// and return the string instead:
//
//	func (w *Widget) SurfaceContent(id string) any {
//	    s, err := quilt.RenderToString(context.Background(), rows(w.items))
//	    if err != nil {
//	        return nil
//	    }
//	    return s
//	}
func RenderToString(ctx context.Context, component templ.Component) (string, error) {
	var sb strings.Builder
	if err := component.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
