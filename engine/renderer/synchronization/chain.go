package synchronization

import (
	"github.com/Rob2309/vulkan-explained/engine/renderer/metadata"
)

// FormsChain reports whether b continues a dependency chain started by a,
// that is whether a's second synchronization scope shares a stage with b's
// first. It is not symmetric. An empty stage mask on either side never
// forms a chain.
func FormsChain(a, b metadata.SyncOperation) bool {
	return a.DstStage.Overlaps(b.SrcStage)
}

// FirstBreak returns the index of the first operation in ops that does not
// chain onto its predecessor, or -1 if ops form a single chain.
func FirstBreak(ops ...metadata.SyncOperation) int {
	for i := 1; i < len(ops); i++ {
		if !FormsChain(ops[i-1], ops[i]) {
			return i
		}
	}
	return -1
}
