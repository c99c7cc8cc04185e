// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// report is what the commands print.
type report struct {
	Value      float64   `json:"value"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	Mode       string    `json:"mode,omitempty"`
	Vector     []float64 `json:"vector"`
	Scores     []float64 `json:"scores,omitempty"`
}

// write prints r as indented JSON or as aligned "key value" lines.
func (r report) write(w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-11s%s\n", "value", formatFloat(r.Value))
	fmt.Fprintf(&b, "%-11s%d\n", "iterations", r.Iterations)
	fmt.Fprintf(&b, "%-11s%t\n", "converged", r.Converged)
	if r.Mode != "" {
		fmt.Fprintf(&b, "%-11s%s\n", "mode", r.Mode)
	}
	fmt.Fprintf(&b, "%-11s%s\n", "vector", joinFloats(r.Vector))
	if len(r.Scores) > 0 {
		fmt.Fprintf(&b, "%-11s%s\n", "scores", joinFloats(r.Scores))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = formatFloat(x)
	}
	return strings.Join(parts, " ")
}
