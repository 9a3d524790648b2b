package props

import (
	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/errors"
)

// Stats counts the outcome of each record of a property stream.
type Stats struct {
	// Decoded is the number of properties stored into fields.
	Decoded int
	// Unknown is the number of properties not declared by the table.
	Unknown int
	// Dropped is the number of properties declared as ignored.
	Dropped int
	// Mismatched is the number of declared properties whose tag type could
	// not be decoded by the declaration.
	Mismatched int
	// Corrected is the number of properties whose decoding did not end at
	// the tag boundary.
	Corrected int
}

// Add returns the sum of two Stats.
func (s Stats) Add(t Stats) Stats {
	return Stats{
		Decoded:    s.Decoded + t.Decoded,
		Unknown:    s.Unknown + t.Unknown,
		Dropped:    s.Dropped + t.Dropped,
		Mismatched: s.Mismatched + t.Mismatched,
		Corrected:  s.Corrected + t.Corrected,
	}
}

// MismatchError indicates a declared property recorded with a type the
// declaration cannot decode.
type MismatchError struct {
	Tag Tag
}

func (err MismatchError) Error() string {
	if err.Tag.Type == WireStruct {
		return "unexpected type " + err.Tag.Type.String() + " (" + err.Tag.StructName + ")"
	}
	return "unexpected type " + err.Tag.Type.String()
}

// Decode reads a property stream from ar into obj, consulting table and its
// ancestors for each record. Records without a usable declaration are
// skipped by their tag size. A declared record is decoded with reads bounded
// to its tag size, and the cursor is then placed at the tag boundary
// regardless of how much was consumed.
//
// Problems confined to one record are returned in warn and decoding
// continues. An error reading a tag header ends the stream, since the next
// record cannot be located; it is returned as err.
func Decode(ar *archive.Archive, table *Table, obj any) (stats Stats, warn, err error) {
	var warns errors.Errors
	for {
		tag, err := ReadTag(ar)
		if err != nil {
			return stats, warns.Return(), err
		}
		if tag.IsNone() {
			return stats, warns.Return(), nil
		}

		start := ar.Tell()
		end := start + int64(tag.Size)
		if end > ar.Limit() {
			return stats, warns.Return(), errors.Corrupt(start, "property %q of %d bytes crosses limit %d", tag.Name, tag.Size, ar.Limit())
		}

		d, _ := table.Lookup(tag.Name)
		switch {
		case d == nil:
			stats.Unknown++
		case d.Dropped():
			stats.Dropped++
		case !d.Accepts(&tag):
			stats.Mismatched++
			warns = warns.Append(errors.PropertyError{Name: tag.Name, Offset: start, Cause: MismatchError{Tag: tag}})
		default:
			prev := ar.SetLimit(end)
			ferr := d.decode(ar, &tag, obj)
			ar.SetLimit(prev)
			if ferr != nil {
				warns = warns.Append(errors.PropertyError{Name: tag.Name, Offset: start, Cause: ferr})
			} else {
				stats.Decoded++
			}
			if ar.Tell() != end {
				stats.Corrected++
			}
		}
		if err := ar.SeekTo(end); err != nil {
			return stats, warns.Return(), err
		}
	}
}
