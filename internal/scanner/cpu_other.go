//go:build !amd64 && !arm64

package scanner

func hasFastLoads() bool {
	return false
}
