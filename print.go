package ring

import (
	"fmt"
	"io"
	"iter"
)

const emptyRingLine = "@empty ring\n"

// Print writes every key on its own line in forward order from the anchor,
// then the node count. An empty ring prints a single "@empty ring" line.
func (r *Ring[K]) Print(w io.Writer) error {
	return r.print(w, r.All(), "")
}

// ReversePrint is Print walking backwards, each key prefixed with "/*/"
func (r *Ring[K]) ReversePrint(w io.Writer) error {
	return r.print(w, r.Backward(), "/*/")
}

func (r *Ring[K]) print(w io.Writer, keys iter.Seq[K], prefix string) error {
	if r.IsEmpty() {
		_, err := io.WriteString(w, emptyRingLine)
		return err
	}

	var err error
	keys(func(k K) bool {
		_, err = fmt.Fprintf(w, "%s%v\n", prefix, k)
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("printing ring: %w", err)
	}

	if _, err := fmt.Fprintf(w, "->number of nodes in ring: %d\n", r.size); err != nil {
		return fmt.Errorf("printing ring: %w", err)
	}
	return nil
}
