package ecimark

import (
	"io/fs"

	"github.com/goliatone/go-ecimark/pkg/markup/hints"
)

// EmbeddedTemplates exposes the built-in hint templates (list, table, seg,
// graf) so callers can copy and override them with hints.NewEngine.
func EmbeddedTemplates() fs.FS {
	return hints.TemplatesFS()
}
