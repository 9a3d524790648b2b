package codec

import (
	"go.uber.org/zap"

	"github.com/ueforge/unmaterial"
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/errors"
	"github.com/ueforge/unmaterial/internal/log"
	"github.com/ueforge/unmaterial/props"
)

// Decoder decodes objects from archives.
type Decoder struct {
	// Logger receives diagnostics about dropped bytes and partial objects.
	// The global logger is used when nil.
	Logger *zap.Logger
}

func (d *Decoder) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.L()
}

// Decode decodes one object of class typeName from ar with the default
// Decoder.
func Decode(typeName string, ar *archive.Archive) (obj *unmaterial.Object, warn, err error) {
	var d Decoder
	return d.Decode(typeName, ar)
}

// Decode decodes one object of class typeName, starting at the cursor of ar
// and ending at its stopper. No read crosses the stopper.
//
// Corrupt data within the object does not fail the decode. Decoding stops at
// the fault, the cursor is moved to the stopper, and the object is returned
// with Diag.Partial set and the fault in warn. Fields decoded before the
// fault keep their values. Bytes left unread before the stopper are reported
// in warn as an errors.BoundaryError, unless the kind discards them.
//
// err is returned only when no object can be produced: the class is not
// decodable, or the cursor lies past the stopper.
func (d *Decoder) Decode(typeName string, ar *archive.Archive) (obj *unmaterial.Object, warn, err error) {
	kind, ok := Lookup(typeName, ar.Version)
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrUnknownType, "%s in %s", typeName, ar.Version)
	}
	stopper := ar.Stopper()
	start := ar.Tell()
	if start > stopper {
		return nil, nil, errors.Newf("object starts at %d, past stopper %d", start, stopper)
	}

	obj = unmaterial.NewObject(kind, "")
	prev := ar.SetLimit(stopper)
	defer ar.SetLimit(prev)

	var warns errors.Errors
	fin, derr := d.decode(ar, kind, obj, &warns)
	tell := ar.Tell()
	switch {
	case derr != nil:
		obj.Diag.Partial = true
		warns = warns.Append(errors.BoundaryError{Tell: tell, Stopper: stopper, Cause: derr})
		d.logger().Warn("partially decoded object",
			zap.Stringer("kind", kind),
			zap.Int64("offset", tell),
			zap.Int64("stopper", stopper),
			zap.Error(derr),
		)
	case tell < stopper && fin:
		d.logger().Debug("dropping bytes",
			zap.Stringer("kind", kind),
			zap.Int64("bytes", stopper-tell),
		)
	case tell < stopper:
		warns = warns.Append(errors.BoundaryError{Tell: tell, Stopper: stopper})
	}
	if tell < stopper {
		obj.Diag.Skipped = stopper - tell
	}
	if err := ar.SeekTo(stopper); err != nil {
		return obj, warns.Return(), err
	}
	return obj, warns.Return(), nil
}

// decode runs the steps of the object's kind. It returns whether a rule
// finished the object early.
func (d *Decoder) decode(ar *archive.Archive, kind unmaterial.Kind, obj *unmaterial.Object, warns *errors.Errors) (finished bool, err error) {
	s := &state{obj: obj}
	for _, r := range preRules {
		if !ar.Matches(r.when) {
			continue
		}
		if _, err := r.apply(ar, s); err != nil {
			return false, errors.Wrapf(err, "%s", r.name)
		}
	}

	stats, pwarn, err := props.Decode(ar, tables[kind], obj)
	obj.Diag.Unknown = stats.Unknown
	obj.Diag.Mismatched = stats.Mismatched
	obj.Diag.Corrected = stats.Corrected
	*warns = warns.Append(pwarn)
	if err != nil {
		return false, err
	}

	for _, k := range kind.Chain() {
	kindRules:
		for _, r := range rules[k] {
			if !ar.Matches(r.when) {
				continue
			}
			out, err := r.apply(ar, s)
			if err != nil {
				return false, errors.Wrapf(err, "%s %s", k, r.name)
			}
			switch out {
			case endKind:
				break kindRules
			case finish:
				return true, nil
			}
		}
	}
	return false, nil
}
