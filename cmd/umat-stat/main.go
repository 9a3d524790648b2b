// The umat-stat command displays stats for the material exports of a
// package.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/bulk"
	"github.com/ueforge/unmaterial/internal/config"
	"github.com/ueforge/unmaterial/internal/log"
	"github.com/ueforge/unmaterial/internal/metrics"
	"github.com/ueforge/unmaterial/loader"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const usage = `usage: umat-stat [-config MANIFEST] [OUTPUT]

Reads the package described by MANIFEST, decodes every material and texture
export, and writes to OUTPUT statistics for the package as JSON.

If OUTPUT is "-" or unspecified, then stdout is used. Warnings and errors are
written to stderr.
`

type BulkStats struct {
	// Number of payloads holding data.
	Payloads int
	// Number of bytes as stored.
	StoredBytes int64
	// Number of bytes once expanded.
	RawBytes int64
	// Number of payloads stored in a side file.
	Separate int
	// Number of payloads that could not be read.
	Truncated int
	// Groups of payloads with identical content.
	Duplicates [][]string `json:",omitempty"`
}

type Stats struct {
	// Number of exports overall.
	ExportCount int

	// Number of decoded objects.
	ObjectCount int

	// Number of decoded objects per kind.
	KindCount map[string]int

	// Number of problems reported while loading.
	WarningCount int

	// Objects that were only partially decoded.
	Partial []string `json:",omitempty"`

	// Materials that are rendered with blending.
	Translucent []string `json:",omitempty"`

	// Materials with no surface texture.
	NullParams []string `json:",omitempty"`

	Bulk BulkStats

	// Decode counters, keyed by metric name and labels.
	Metrics map[string]float64 `json:",omitempty"`
}

type payload struct {
	id     string
	handle bulk.Handle
}

func label(obj *unmaterial.Object) string {
	return fmt.Sprintf("%s:%s", obj.Kind, obj.Name)
}

func (s *Stats) Fill(ctx context.Context, res *loader.Result, store *bulk.Store) error {
	objects := res.Decoded()
	s.ObjectCount = len(objects)
	s.KindCount = lo.CountValuesBy(objects, func(o *unmaterial.Object) string { return o.Kind.String() })

	for _, obj := range objects {
		if obj.Diag.Partial {
			s.Partial = append(s.Partial, label(obj))
		}
		if obj.IsTexture() {
			continue
		}
		if obj.IsTranslucent(res.Table) {
			s.Translucent = append(s.Translucent, label(obj))
		}
		if p := obj.Params(res.Table); p.IsNull() {
			s.NullParams = append(s.NullParams, label(obj))
		}
	}

	var payloads []payload
	for _, obj := range objects {
		for i, h := range obj.Handles() {
			if h.Empty() {
				continue
			}
			payloads = append(payloads, payload{id: fmt.Sprintf("%s#%d", label(obj), i), handle: h})
		}
	}
	s.Bulk.Payloads = len(payloads)
	for _, p := range payloads {
		s.Bulk.StoredBytes += int64(p.handle.StoredSize)
		s.Bulk.RawBytes += int64(p.handle.RawSize)
		if p.handle.Separate() {
			s.Bulk.Separate++
		}
	}

	handles := lo.Map(payloads, func(p payload, _ int) bulk.Handle { return p.handle })
	data, warn, err := store.Prefetch(ctx, handles)
	if err != nil {
		return err
	}
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	type digested struct {
		id     string
		digest [32]byte
	}
	var digests []digested
	for i, b := range data {
		if b == nil {
			s.Bulk.Truncated++
			continue
		}
		digests = append(digests, digested{payloads[i].id, bulk.Digest(b)})
	}
	groups := lo.GroupBy(digests, func(d digested) [32]byte { return d.digest })
	for _, g := range groups {
		if len(g) > 1 {
			s.Bulk.Duplicates = append(s.Bulk.Duplicates, lo.Map(g, func(d digested, _ int) string { return d.id }))
		}
	}
	sort.Slice(s.Bulk.Duplicates, func(i, j int) bool {
		return s.Bulk.Duplicates[i][0] < s.Bulk.Duplicates[j][0]
	})
	return nil
}

func main() {
	manifest := flag.String("config", "umat.yaml", "path of the package manifest")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := run(*manifest, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		os.Exit(1)
	}
}

func run(manifest, outPath string) error {
	m, err := config.Load(manifest)
	if err != nil {
		return err
	}
	logger, err := log.Init(m.Log)
	if err != nil {
		return fmt.Errorf("init log: %w", err)
	}
	defer logger.Sync()

	var output io.Writer = os.Stdout
	if outPath != "" && outPath != "-" {
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
		output = out
	}

	pkg, err := m.Package()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	dm := metrics.NewDecode()
	if err := dm.Register(reg); err != nil {
		return err
	}
	ctx := context.Background()
	res, warn, err := loader.Load(ctx, pkg, append(m.Options(), loader.WithLogger(logger), loader.WithMetrics(dm))...)
	if err != nil {
		return err
	}

	var opts []bulk.Option
	if side := m.SidePath(); side != "" {
		b, err := os.ReadFile(side)
		if err != nil {
			return fmt.Errorf("read side file: %w", err)
		}
		opts = append(opts, bulk.WithSideFile(bytes.NewReader(b)))
	}
	store := bulk.NewStore(bytes.NewReader(pkg.Data), opts...)

	stats := Stats{ExportCount: len(pkg.Exports)}
	if errs, ok := warn.(interface{ Unwrap() []error }); ok {
		stats.WarningCount = len(errs.Unwrap())
	} else if warn != nil {
		stats.WarningCount = 1
	}
	if err := stats.Fill(ctx, res, store); err != nil {
		return err
	}
	if stats.Metrics, err = metrics.Flatten(reg); err != nil {
		return err
	}

	je := json.NewEncoder(output)
	je.SetIndent("", "\t")
	return je.Encode(&stats)
}
