package normalize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dto "github.com/prometheus/client_model/go"

	"github.com/biggeezerdevelopment/jsonnum"
	"github.com/biggeezerdevelopment/jsonnum/batch"
	"github.com/biggeezerdevelopment/jsonnum/internal/metrics"
	"github.com/biggeezerdevelopment/jsonnum/internal/parser"
	"github.com/biggeezerdevelopment/jsonnum/internal/scanner"
)

// codec reads the current token as one type and writes it back.
type codec = parser.NumberFunc

var codecs = map[string]codec{
	"int32": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadInt32()
		if err == nil {
			w.WriteInt32(v)
		}
		return err
	},
	"int64": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadInt64()
		if err == nil {
			w.WriteInt64(v)
		}
		return err
	},
	"float32": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadFloat32()
		if err == nil {
			w.WriteFloat32(v)
		}
		return err
	},
	"float64": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadFloat64()
		if err == nil {
			w.WriteFloat64(v)
		}
		return err
	},
	"decimal": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadDecimal()
		if err == nil {
			w.WriteDecimal(v)
		}
		return err
	},
	"number": func(r *jsonnum.Reader, w *jsonnum.Writer) error {
		v, err := r.ReadNumber()
		if err == nil {
			w.WriteNumber(v)
		}
		return err
	},
}

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "normalize [files...]",
		Short: "Re-encodes JSON numbers or arrays of numbers canonically",
		Long: "Reads each file (stdin when none are given) holding a JSON number, an array " +
			"of numbers or an object, decodes every number as --type and writes the compact " +
			"canonical encoding, one line per input.",
		RunE: normalizeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func normalizeFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	logger, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return Run(c.Context(), config, logger, c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr())
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Run normalizes every input on a worker pool and writes the results in
// input order. Inputs that fail produce no line; their errors are returned
// together once all inputs are done.
func Run(ctx context.Context, config *Config, logger *zap.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	conv, ok := codecs[config.Type]
	if !ok {
		return fmt.Errorf("unknown type %q", config.Type)
	}

	docs, err := readInputs(config.Files, stdin)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New("", reg)
	if err != nil {
		return err
	}

	pool, err := batch.New(config.Workers, logger)
	if err != nil {
		return err
	}
	defer func() { _ = pool.Release(time.Second) }()

	start := time.Now()
	out, runErr := batch.Run(ctx, pool, docs, func(doc []byte) ([]byte, error) {
		return normalize(doc, conv, logger, m)
	})
	logger.Info("normalized inputs",
		zap.Int("inputs", len(docs)),
		zap.Int("workers", pool.Size()),
		zap.String("type", config.Type),
		zap.Duration("duration", time.Since(start)),
	)

	for _, line := range out {
		if line == nil {
			continue
		}
		if _, err := stdout.Write(append(line, '\n')); err != nil {
			return err
		}
	}

	if config.Metrics {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		writeFamilies(stderr, families)
	}
	return runErr
}

func readInputs(files []string, stdin io.Reader) ([][]byte, error) {
	if len(files) == 0 {
		doc, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return [][]byte{doc}, nil
	}
	docs := make([][]byte, len(files))
	for i, name := range files {
		doc, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return docs, nil
}

// normalize rewrites one document. Objects are walked with the document
// parser, which leaves strings as they are; numbers and arrays of numbers
// also accept quoted values.
func normalize(doc []byte, conv codec, logger *zap.Logger, m *metrics.Metrics) ([]byte, error) {
	w, err := jsonnum.NewWriter()
	if err != nil {
		return nil, err
	}

	var stats jsonnum.Stats
	if isObject(doc) {
		var p *parser.Parser
		if p, err = parser.New(jsonnum.WithLogger(logger)); err != nil {
			return nil, err
		}
		err = p.Rewrite(w, doc, conv)
		stats = p.Stats()
	} else {
		var r *jsonnum.Reader
		if r, err = jsonnum.NewBytesReader(doc, jsonnum.WithLogger(logger)); err != nil {
			return nil, err
		}
		err = normalizeValue(r, w, conv)
		stats = r.Stats()
	}
	m.Observe(stats)
	m.ObserveError(err)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(w.Bytes()), nil
}

func isObject(doc []byte) bool {
	for _, c := range doc {
		if !scanner.IsWhitespace(c) {
			return c == '{'
		}
	}
	return false
}

func normalizeValue(r *jsonnum.Reader, w *jsonnum.Writer, conv codec) error {
	c, err := r.NextToken()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}

	if c != jsonnum.ArrayStart && c != 'n' {
		if err := conv(r, w); err != nil {
			return err
		}
		return r.End()
	}

	count := 0
	null, err := r.ReadArray(func(r *jsonnum.Reader) error {
		if count == 0 {
			_ = w.WriteByte(jsonnum.ArrayStart)
		} else {
			_ = w.WriteByte(jsonnum.Comma)
		}
		count++
		return conv(r, w)
	})
	if err != nil {
		return err
	}
	switch {
	case null:
		w.WriteNull()
	case count == 0:
		w.WriteASCII("[]")
	default:
		_ = w.WriteByte(jsonnum.ArrayEnd)
	}
	return r.End()
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) {
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), formatLabels(m.GetLabel()), metricValue(mf.GetType(), m))
		}
	}
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s=%q", p.GetName(), p.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func metricValue(typ dto.MetricType, m *dto.Metric) float64 {
	switch typ {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	}
	return 0
}
