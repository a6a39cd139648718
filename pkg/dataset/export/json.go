package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes confs as a JSON array indented by two spaces. Non-ASCII text
// and HTML characters are written as is.
func WriteJSON(w io.Writer, confs []Conference) error {
	if confs == nil {
		confs = []Conference{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(confs); err != nil {
		return fmt.Errorf("failed to encode conferences: %w", err)
	}
	return nil
}
