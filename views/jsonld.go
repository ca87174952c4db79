package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// JsonLdScripts renders one <script type="application/ld+json"> element per
// schema. Schemas are never merged into a single array.
func JsonLdScripts(schemas []Schema) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		blocks := make([]string, 0, len(schemas))
		for _, s := range schemas {
			// json.Marshal escapes <, > and &, so "</script>" cannot appear
			// inside the payload.
			b, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("marshal %s schema: %w", s.Type(), err)
			}
			blocks = append(blocks, `<script type="application/ld+json">`+string(b)+`</script>`)
		}
		_, err := io.WriteString(w, strings.Join(blocks, "\n"))
		return err
	})
}
