package benchmarks

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"github.com/biggeezerdevelopment/jsonnum"
)

var (
	int64s   []int64
	float64s []float64

	int64JSON   []byte
	float64JSON []byte
	decimalJSON []byte
	longJSON    []byte
)

func init() {
	rng := rand.New(rand.NewSource(1))
	int64s = make([]int64, 1000)
	float64s = make([]float64, 1000)
	for i := range int64s {
		int64s[i] = rng.Int63() >> uint(rng.Intn(60))
		if i%3 == 0 {
			int64s[i] = -int64s[i]
		}
		float64s[i] = float64(rng.Intn(1000000)) / 100
	}
	int64JSON, _ = json.Marshal(int64s)
	float64JSON, _ = json.Marshal(float64s)

	decimalJSON = []byte(`[`)
	longJSON = []byte(`[`)
	for i := 0; i < 1000; i++ {
		if i > 0 {
			decimalJSON = append(decimalJSON, ',')
			longJSON = append(longJSON, ',')
		}
		decimalJSON = strconv.AppendFloat(decimalJSON, float64s[i], 'f', 2, 64)
		longJSON = append(longJSON, "123456789012345678901234567890."...)
		longJSON = strconv.AppendInt(longJSON, int64(i), 10)
	}
	decimalJSON = append(decimalJSON, ']')
	longJSON = append(longJSON, ']')
}

// Decoding

func BenchmarkDecodeInt64s_StdLib(b *testing.B) {
	b.SetBytes(int64(len(int64JSON)))
	var v []int64
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(int64JSON, &v)
	}
}

func BenchmarkDecodeInt64s_JSONNum(b *testing.B) {
	b.SetBytes(int64(len(int64JSON)))
	var v []int64
	for i := 0; i < b.N; i++ {
		_ = jsonnum.Unmarshal(int64JSON, &v)
	}
}

func BenchmarkDecodeFloat64s_StdLib(b *testing.B) {
	b.SetBytes(int64(len(float64JSON)))
	var v []float64
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(float64JSON, &v)
	}
}

func BenchmarkDecodeFloat64s_JSONNum(b *testing.B) {
	b.SetBytes(int64(len(float64JSON)))
	var v []float64
	for i := 0; i < b.N; i++ {
		_ = jsonnum.Unmarshal(float64JSON, &v)
	}
}

func BenchmarkDecodeDecimals_JSONNum(b *testing.B) {
	b.SetBytes(int64(len(decimalJSON)))
	var v []*apd.Decimal
	for i := 0; i < b.N; i++ {
		_ = jsonnum.Unmarshal(decimalJSON, &v)
	}
}

func BenchmarkDecodeLongDecimals_JSONNum(b *testing.B) {
	b.SetBytes(int64(len(longJSON)))
	var v []*apd.Decimal
	for i := 0; i < b.N; i++ {
		_ = jsonnum.Unmarshal(longJSON, &v)
	}
}

func BenchmarkDecodeNumbers_StdLib(b *testing.B) {
	b.SetBytes(int64(len(decimalJSON)))
	var v []json.Number
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(decimalJSON, &v)
	}
}

func BenchmarkDecodeNumbers_JSONNum(b *testing.B) {
	b.SetBytes(int64(len(decimalJSON)))
	var v []jsonnum.Number
	for i := 0; i < b.N; i++ {
		_ = jsonnum.Unmarshal(decimalJSON, &v)
	}
}

// Encoding

func BenchmarkEncodeInt64s_StdLib(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(int64s)
	}
}

func BenchmarkEncodeInt64s_JSONNum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = jsonnum.Marshal(int64s)
	}
}

func BenchmarkEncodeFloat64s_StdLib(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(float64s)
	}
}

func BenchmarkEncodeFloat64s_JSONNum(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = jsonnum.Marshal(float64s)
	}
}

// Single values

func BenchmarkParseInt64_Strconv(b *testing.B) {
	s := "-1234567890123"
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseInt(s, 10, 64)
	}
}

func BenchmarkParseInt64_JSONNum(b *testing.B) {
	data := []byte("-1234567890123")
	for i := 0; i < b.N; i++ {
		_, _ = jsonnum.ParseInt64(data)
	}
}

func BenchmarkAppendInt64_Strconv(b *testing.B) {
	buf := make([]byte, 0, 32)
	for i := 0; i < b.N; i++ {
		buf = strconv.AppendInt(buf[:0], -1234567890123, 10)
	}
}

func BenchmarkAppendInt64_JSONNum(b *testing.B) {
	buf := make([]byte, 0, 32)
	for i := 0; i < b.N; i++ {
		buf = jsonnum.AppendInt64(buf[:0], -1234567890123)
	}
}
