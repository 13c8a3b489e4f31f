//go:build amd64

package scanner

import (
	"golang.org/x/sys/cpu"
)

// Unaligned eight byte loads are cheap on every core with SSE4.2.
func hasFastLoads() bool {
	return cpu.X86.HasSSE42 || cpu.X86.HasAVX2
}
