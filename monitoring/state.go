package monitoring

import (
	"fmt"
	"io"

	"github.com/syifan/goseth"
)

// DumpState writes v as JSON, following references down to depth levels.
func DumpState(w io.Writer, v any, depth int) error {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(v)
	serializer.SetMaxDepth(depth)

	if err := serializer.Serialize(w); err != nil {
		return fmt.Errorf("monitoring: %w", err)
	}

	return nil
}
