package jsonnum

import (
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNumberBuffer_Growth(t *testing.T) {
	var nb numberBuffer
	nb.reset(128)
	require.Equal(t, 128, nb.capacity())

	caps := []int{nb.capacity()}
	for i := 0; i < 10000; i++ {
		nb.append('1')
		if c := nb.capacity(); c != caps[len(caps)-1] {
			caps = append(caps, c)
		}
	}
	require.Len(t, nb.bytes(), 10000)
	require.Equal(t, []int{128, 256, 512, 1024, 2048, 4096, 8192, 16384}, caps)

	nb.reset(128)
	require.Empty(t, nb.bytes())
	require.Equal(t, 16384, nb.capacity())
}

func TestReadLongNumber(t *testing.T) {
	digits := "1" + strings.Repeat("0", 9998) + "7"
	input := "[" + digits + "]"

	core, logs := observer.New(zap.DebugLevel)
	r, err := NewBytesReader([]byte(input), WithLogger(zap.New(core)))
	require.NoError(t, err)

	var text string
	_, err = r.ReadArray(func(r *Reader) error {
		d, err := r.ReadDecimal()
		if err != nil {
			return err
		}
		text = d.String()
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.End())

	require.Equal(t, digits, text)
	require.Equal(t, 16384, r.long.capacity())
	require.Equal(t, Stats{Generic: 1, LongTokens: 1}, r.Stats())

	entries := logs.FilterMessage("long number token").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(10000), entries[0].ContextMap()["length"])
	require.Equal(t, int64(1), entries[0].ContextMap()["offset"])
}

func TestReadLongNumber_Streaming(t *testing.T) {
	digits := strings.Repeat("9", 500)
	src := iotest.OneByteReader(strings.NewReader(digits + ", 1"))

	r, err := NewReader(src, WithNumberWindow(32), WithBufferSize(7))
	require.NoError(t, err)

	n, err := r.ReadNumber()
	require.NoError(t, err)
	require.Equal(t, KindDecimal, n.Kind())
	require.Equal(t, digits, n.String())
	require.Equal(t, uint64(1), r.Stats().LongTokens)

	require.NoError(t, r.Expect(','))
	v, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(1), v)
}

func TestReadLongNumber_WindowBoundary(t *testing.T) {
	tests := []struct {
		name string
		size int
		long bool
	}{
		{"one short of window", DefaultNumberWindow - 1, false},
		{"exactly window", DefaultNumberWindow, true},
		{"one past window", DefaultNumberWindow + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digits := strings.Repeat("3", tt.size)
			r, err := NewBytesReader([]byte(digits + " "))
			require.NoError(t, err)

			d, err := r.ReadDecimal()
			require.NoError(t, err)
			require.Equal(t, digits, d.String())
			require.Equal(t, tt.long, r.Stats().LongTokens == 1)
			require.NoError(t, r.End())
		})
	}
}

func TestReadLongNumber_Float(t *testing.T) {
	input := "1" + strings.Repeat("0", 99) + ".0e-50"
	f, err := ParseFloat64([]byte(input))
	require.NoError(t, err)
	require.Equal(t, 1e49, f)

	_, err = ParseInt64([]byte(strings.Repeat("1", 200)))
	require.ErrorIs(t, err, ErrTypeMismatch)

	f, err = ParseFloat64([]byte(strings.Repeat("9", 400)))
	require.NoError(t, err)
	require.True(t, math.IsInf(f, 1))
}
