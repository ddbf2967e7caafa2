package export

import (
	"fmt"
	"strings"

	"github.com/rogue-resident/rogue-docs/internal/model"
)

// UnknownFormatError reports a format outside the supported set.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	valid := make([]string, len(model.Formats))
	for i, f := range model.Formats {
		valid[i] = string(f)
	}
	return fmt.Sprintf("unknown export format %q (valid: %s)", e.Format, strings.Join(valid, ", "))
}
