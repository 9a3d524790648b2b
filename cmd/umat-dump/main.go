// The umat-dump command decodes the material exports of a package and
// prints each object.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/bulk"
	"github.com/ueforge/unmaterial/internal/config"
	"github.com/ueforge/unmaterial/internal/log"
	"github.com/ueforge/unmaterial/loader"
)

const usage = `usage: umat-dump [-config MANIFEST] [-bulk] [OUTPUT]

Reads the package described by MANIFEST, decodes every material and texture
export, and writes to OUTPUT each object with its fields, its capabilities,
its material parameters and its payload handles.

With -bulk, every payload is also read and expanded, and its size and digest
are written.

If OUTPUT is "-" or unspecified, then stdout is used. Warnings and errors are
written to stderr.
`

func main() {
	manifest := flag.String("config", "umat.yaml", "path of the package manifest")
	materialize := flag.Bool("bulk", false, "read and expand every payload")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := run(*manifest, *materialize, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
		os.Exit(1)
	}
}

func run(manifest string, materialize bool, outPath string) error {
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
	res, warn, err := loader.Load(context.Background(), pkg, append(m.Options(), loader.WithLogger(logger))...)
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	if err != nil {
		return err
	}

	var store *bulk.Store
	if materialize {
		var opts []bulk.Option
		if side := m.SidePath(); side != "" {
			b, err := os.ReadFile(side)
			if err != nil {
				return fmt.Errorf("read side file: %w", err)
			}
			opts = append(opts, bulk.WithSideFile(bytes.NewReader(b)))
		}
		store = bulk.NewStore(bytes.NewReader(pkg.Data), opts...)
	}

	for _, obj := range res.Decoded() {
		if err := dump(output, res.Table, store, obj); err != nil {
			return err
		}
	}
	return nil
}

func dump(w io.Writer, r unmaterial.Resolver, store *bulk.Store, obj *unmaterial.Object) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s %q", obj.Index, obj.Kind, obj.Name)
	if obj.Diag.Partial {
		b.WriteString(" (partial)")
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "\tfields: %+v\n", obj.Fields)
	if d := obj.Diag; d != (unmaterial.Diagnostics{}) {
		fmt.Fprintf(&b, "\tdiag: skipped=%d unknown=%d mismatched=%d corrected=%d\n", d.Skipped, d.Unknown, d.Mismatched, d.Corrected)
	}
	fmt.Fprintf(&b, "\ttexture=%t cube=%t translucent=%t\n", obj.IsTexture(), obj.IsTextureCube(), obj.IsTranslucent(r))
	if p := obj.Params(r); !p.IsNull() || p.Mask != nil {
		fmt.Fprintf(&b, "\tparams: %s\n", formatParams(p))
	}
	handles := lo.Reject(obj.Handles(), func(h bulk.Handle, _ int) bool { return h.Empty() })
	for i, h := range handles {
		fmt.Fprintf(&b, "\tpayload %d: %s", i, h)
		if store != nil {
			data, err := store.Materialize(h)
			if err != nil {
				fmt.Fprintf(&b, " error: %s", err)
			} else {
				fmt.Fprintf(&b, " size=%d digest=%x", len(data), bulk.Digest(data))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type namedSlot struct {
	name string
	obj  *unmaterial.Object
}

func formatParams(p unmaterial.Params) string {
	slots := []namedSlot{
		{"diffuse", p.Diffuse},
		{"normal", p.Normal},
		{"specular", p.Specular},
		{"specpower", p.SpecPower},
		{"opacity", p.Opacity},
		{"emissive", p.Emissive},
		{"cube", p.Cube},
		{"mask", p.Mask},
	}
	parts := lo.FilterMap(slots, func(s namedSlot, _ int) (string, bool) {
		if s.obj == nil {
			return "", false
		}
		return s.name + "=" + s.obj.Name, true
	})
	if p.EmissiveChannel != unmaterial.TC_NONE {
		parts = append(parts, "emissive_channel="+p.EmissiveChannel.String())
	}
	if p.SpecularMaskChannel != unmaterial.TC_NONE {
		parts = append(parts, "specular_channel="+p.SpecularMaskChannel.String())
	}
	if p.SpecularPowerChannel != unmaterial.TC_NONE {
		parts = append(parts, "specpower_channel="+p.SpecularPowerChannel.String())
	}
	if p.CubemapMaskChannel != unmaterial.TC_NONE {
		parts = append(parts, "cube_channel="+p.CubemapMaskChannel.String())
	}
	if p.OpacityFromAlpha {
		parts = append(parts, "opacity_from_alpha")
	}
	if p.SpecularFromAlpha {
		parts = append(parts, "specular_from_alpha")
	}
	if p.UseMobileSpecular {
		parts = append(parts, fmt.Sprintf("mobile_specular=%g/%s", p.MobileSpecularPower, p.MobileSpecularMask))
	}
	return strings.Join(parts, " ")
}
