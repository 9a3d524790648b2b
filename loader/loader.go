// The loader package decodes every material export of a package. Exports
// are decoded in parallel over separate archives, and references between
// them are resolvable once every export has been decoded.
package loader

import (
	"context"
	"runtime"
	"sync"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/codec"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/internal/log"
	"github.com/ueforge/unmaterial/internal/metrics"
)

// Export locates one serialized object within a package.
type Export struct {
	// Type is the class name of the object.
	Type string
	// Name is the object name.
	Name string
	// Offset is the position of the object's bytes within the package.
	Offset int64
	// Length is the number of bytes of the object.
	Length int64
}

// Package is the information a package container provides about one
// package.
type Package struct {
	// Data is the whole package. It is not modified.
	Data []byte
	// Version is the version of every archive in the package.
	Version archive.Version
	// Names is the name table.
	Names archive.NameTable
	// Exports is the export table.
	Exports []Export
}

type options struct {
	workers     int
	logger      *zap.Logger
	metrics     *metrics.Decode
	maxArrayLen int
}

// Option configures Load.
type Option func(*options)

// WithWorkers sets the number of exports decoded concurrently. It defaults
// to the number of CPUs.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger that receives decode diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics sets the collectors that record decode outcomes.
func WithMetrics(m *metrics.Decode) Option {
	return func(o *options) { o.metrics = m }
}

// WithMaxArrayLen sets the largest element count accepted by each archive.
func WithMaxArrayLen(n int) Option {
	return func(o *options) { o.maxArrayLen = n }
}

// Result holds the decoded exports of a package.
type Result struct {
	// Objects holds the decoded objects by export index. Entries for exports
	// that could not be decoded are nil.
	Objects []*unmaterial.Object
	// Table resolves references between the objects.
	Table *unmaterial.Table
}

// Decoded returns the decoded objects, skipping nil entries.
func (r *Result) Decoded() []*unmaterial.Object {
	return lo.Filter(r.Objects, func(o *unmaterial.Object, _ int) bool { return o != nil })
}

// Load decodes every export of pkg whose class is decodable. Problems with
// individual exports are returned in warn as errors.ObjectError values, and
// never prevent other exports from decoding. Exports of classes that are not
// decodable are left nil without a warning. References that do not resolve
// to a decoded export are reported in warn, matching
// errors.ErrUnresolvedReference.
//
// err is returned if ctx is done before every export is decoded, or if the
// worker pool cannot be created.
func Load(ctx context.Context, pkg *Package, opts ...Option) (res *Result, warn, err error) {
	o := options{workers: runtime.NumCPU(), logger: log.L()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	dec := &codec.Decoder{Logger: o.logger}
	start := time.Now()

	pool, err := ants.NewPool(o.workers, ants.WithPanicHandler(func(v any) {
		o.logger.Warn("decode panicked", zap.Any("panic", v))
	}))
	if err != nil {
		return nil, nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	objects := make([]*unmaterial.Object, len(pkg.Exports))
	warns := make([]error, len(pkg.Exports))
	var wg sync.WaitGroup
	for i := range pkg.Exports {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		wg.Add(1)
		i := i
		err := pool.Submit(func() {
			defer wg.Done()
			objects[i], warns[i] = load(dec, pkg, i, &o)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, nil, errors.Wrap(err, "submit export")
		}
	}
	wg.Wait()

	res = &Result{Objects: objects, Table: unmaterial.NewTable(objects)}
	var all errors.Errors
	for i, w := range warns {
		all = all.Append(w)
		obj := objects[i]
		if obj == nil {
			continue
		}
		for _, ref := range res.Table.Unresolved(obj) {
			all = all.Append(objectError(pkg, i, errors.Wrapf(errors.ErrUnresolvedReference, "%s", ref)))
		}
	}
	if o.metrics != nil {
		o.metrics.Duration.Observe(time.Since(start).Seconds())
	}
	return res, all.Return(), nil
}

func objectError(pkg *Package, i int, cause error) error {
	e := pkg.Exports[i]
	return errors.ObjectError{Index: i, Type: e.Type, Name: e.Name, Cause: cause}
}

// load decodes one export over its own archive.
func load(dec *codec.Decoder, pkg *Package, i int, o *options) (*unmaterial.Object, error) {
	e := pkg.Exports[i]
	if _, ok := codec.Lookup(e.Type, pkg.Version); !ok {
		o.count(e.Type, metrics.OutcomeUnsupported)
		return nil, nil
	}
	end := e.Offset + e.Length
	if e.Offset < 0 || e.Length < 0 || end > int64(len(pkg.Data)) {
		o.count(e.Type, metrics.OutcomeInvalid)
		return nil, objectError(pkg, i, errors.Newf("range [%d, %d) outside of package of %d bytes", e.Offset, end, len(pkg.Data)))
	}

	aopts := []archive.Option{archive.WithNames(pkg.Names)}
	if o.maxArrayLen > 0 {
		aopts = append(aopts, archive.WithMaxArrayLen(o.maxArrayLen))
	}
	ar := archive.New(pkg.Data, pkg.Version, aopts...)
	if err := ar.SeekTo(e.Offset); err != nil {
		return nil, objectError(pkg, i, err)
	}
	if err := ar.SetStopper(end); err != nil {
		return nil, objectError(pkg, i, err)
	}
	obj, warn, err := dec.Decode(e.Type, ar)
	if err != nil {
		o.count(e.Type, metrics.OutcomeInvalid)
		return nil, objectError(pkg, i, err)
	}
	obj.Name = e.Name
	obj.Index = i

	outcome := metrics.OutcomeOK
	switch {
	case obj.Diag.Partial:
		outcome = metrics.OutcomePartial
	case warn != nil:
		outcome = metrics.OutcomeWarned
	}
	o.count(obj.Kind.String(), outcome)
	if o.metrics != nil {
		o.metrics.SkippedBytes.Add(float64(obj.Diag.Skipped))
		o.metrics.UnknownProperties.Add(float64(obj.Diag.Unknown))
	}
	if warn != nil {
		return obj, objectError(pkg, i, warn)
	}
	return obj, nil
}

func (o *options) count(kind, outcome string) {
	if o.metrics != nil {
		o.metrics.Objects.WithLabelValues(kind, outcome).Inc()
	}
}
