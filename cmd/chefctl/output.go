package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// emit 依 --format 輸出 JSON 或文字
func (c *cli) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if c.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(leer)")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "- %s\n", it)
	}
}
