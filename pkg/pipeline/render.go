package pipeline

import (
	"github.com/matzehuels/factoryfloor/pkg/floor"
	"github.com/matzehuels/factoryfloor/pkg/render"
)

// Render formats f for Result.Output.
func Render(f *floor.Floor, opts Options) string {
	divider := opts.Divider
	if divider == "" {
		divider = DefaultDivider
	}
	return render.Text(f, divider)
}
