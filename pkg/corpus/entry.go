// Package corpus converts fixture files into per-segment corpus entry files,
// mirroring the upstream fixture tree under the corpus root.
package corpus

import "fmt"

// headerRule is the line that frames the generated entry header.
const headerRule = "=================="

// endMarker terminates every entry body.
const endMarker = "---"

// RenderEntry produces the full text of one corpus entry: a header block
// naming the logical entry location and segment index, a blank line, the
// segment body, and the trailing end-marker line. The output depends only on
// its inputs, so regeneration yields byte-identical files.
func RenderEntry(displayPath string, index int, body string) string {
	return fmt.Sprintf("%s\n%s Test %d\n%s\n\n%s\n%s\n", headerRule, displayPath, index, headerRule, body, endMarker)
}
