package jsonnum

import (
	"encoding/json"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"
)

// TestPerformanceRegression compares reading a large numeric array against
// encoding/json. Timings are logged, never enforced.
func TestPerformanceRegression(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance tests in short mode")
	}

	data := generateNumberArray(10000)
	iterations := 20

	stdTime := benchmarkDecode(iterations, func() error {
		var v []float64
		return json.Unmarshal(data, &v)
	})
	ourTime := benchmarkDecode(iterations, func() error {
		var v []float64
		return Unmarshal(data, &v)
	})

	ratio := float64(stdTime) / float64(ourTime)
	t.Logf("Decode ratio (std/ours): %.2f (std=%v, ours=%v)", ratio, stdTime, ourTime)
}

// TestMemoryEfficiency checks that the fast paths do not allocate.
func TestMemoryEfficiency(t *testing.T) {
	r, err := NewBytesReader(nil)
	if err != nil {
		t.Fatal(err)
	}
	ints := []byte("-1234567890")
	floats := []byte("12345.6789")
	decimals := []byte("1.5")

	allocs := testing.AllocsPerRun(100, func() {
		r.Reset(ints)
		if _, err := r.ReadInt64(); err != nil {
			t.Fatal(err)
		}
		r.Reset(floats)
		if _, err := r.ReadFloat64(); err != nil {
			t.Fatal(err)
		}
		r.Reset(decimals)
		if _, err := r.ReadNumber(); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Errorf("reader fast paths allocated %.1f times per run", allocs)
	}

	w, err := NewWriter()
	if err != nil {
		t.Fatal(err)
	}
	values := []int32{1, -22, 333, 4444}
	allocs = testing.AllocsPerRun(100, func() {
		w.Reset()
		w.WriteInt64(-1234567890123)
		w.WriteInt32s(values)
		w.WriteFloat64(1.25)
	})
	if allocs != 0 {
		t.Errorf("writer allocated %.1f times per run", allocs)
	}
}

// TestConcurrentPerformance runs independent readers and writers on every
// processor.
func TestConcurrentPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping concurrent performance tests in short mode")
	}

	data := generateNumberArray(1000)
	numGoroutines := runtime.GOMAXPROCS(0)
	iterationsPerGoroutine := 50
	done := make(chan error, numGoroutines)

	start := time.Now()
	for i := 0; i < numGoroutines; i++ {
		go func() {
			var err error
			for j := 0; j < iterationsPerGoroutine && err == nil; j++ {
				var v []float64
				if err = Unmarshal(data, &v); err == nil {
					_, err = Marshal(v)
				}
			}
			done <- err
		}()
	}
	for i := 0; i < numGoroutines; i++ {
		if err := <-done; err != nil {
			t.Errorf("goroutine failed: %v", err)
		}
	}
	t.Logf("%d goroutines x %d iterations in %v", numGoroutines, iterationsPerGoroutine, time.Since(start))
}

// TestCorrectnessUnderLoad checks that pooled readers and writers never leak
// state between concurrent callers.
func TestCorrectnessUnderLoad(t *testing.T) {
	const workers = 16
	done := make(chan error, workers)

	for w := 0; w < workers; w++ {
		go func(seed int64) {
			for i := int64(0); i < 500; i++ {
				v := seed*1000003 + i
				data, err := Marshal([]int64{v, -v})
				if err != nil {
					done <- err
					return
				}
				var got []int64
				if err := Unmarshal(data, &got); err != nil {
					done <- err
					return
				}
				if len(got) != 2 || got[0] != v || got[1] != -v {
					done <- strconv.ErrRange
					return
				}
			}
			done <- nil
		}(int64(w))
	}

	for w := 0; w < workers; w++ {
		if err := <-done; err != nil {
			t.Errorf("worker failed: %v", err)
		}
	}
}

func benchmarkDecode(iterations int, decode func() error) time.Duration {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = decode()
	}
	return time.Since(start)
}

func generateNumberArray(n int) []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		switch i % 3 {
		case 0:
			b.WriteString(strconv.Itoa(i * 7919))
		case 1:
			b.WriteString(strconv.FormatFloat(float64(i)/8, 'f', -1, 64))
		default:
			b.WriteString(strconv.FormatFloat(float64(i)*1e-3, 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return []byte(b.String())
}
