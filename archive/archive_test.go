package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueforge/unmaterial/archive"
	"github.com/ueforge/unmaterial/bulk"
	. "github.com/ueforge/unmaterial/declare"
	"github.com/ueforge/unmaterial/errors"
)

var (
	ut2  = archive.Version{Game: archive.UT2, Ver: 128, LicenseeVer: 29}
	ue3  = archive.Version{Game: archive.UE3, Ver: 868}
	ue1  = archive.Version{Game: archive.UE1, Ver: 61}
	both = []archive.Version{ut2, ue3}
)

func TestPrimitives(t *testing.T) {
	ar := Stream{Uint8(0xAB), Uint16(0xBEEF), Int32(-2), Uint32(0xDEADBEEF), Int64(1 << 40), Float(2.5), Int32(1)}.Archive(ue3)

	u8, err := ar.Uint8()
	require.NoError(t, err)
	assert.EqualValues(t, 0xAB, u8)
	u16, _ := ar.Uint16()
	assert.EqualValues(t, 0xBEEF, u16)
	i32, _ := ar.Int32()
	assert.EqualValues(t, -2, i32)
	u32, _ := ar.Uint32()
	assert.EqualValues(t, uint32(0xDEADBEEF), u32)
	i64, _ := ar.Int64()
	assert.EqualValues(t, 1<<40, i64)
	f, _ := ar.Float32()
	assert.EqualValues(t, 2.5, f)
	b, err := ar.Bool32()
	require.NoError(t, err)
	assert.True(t, b)
	assert.EqualValues(t, 27, ar.Tell())

	_, err = ar.Uint8()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
	assert.EqualValues(t, 27, ar.Tell())
}

func TestLimit(t *testing.T) {
	ar := Stream{Int32(1), Int32(2)}.Archive(ue3)
	prev := ar.SetLimit(4)
	assert.EqualValues(t, 8, prev)
	assert.EqualValues(t, 4, ar.Remaining())

	_, err := ar.Int64()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
	v, err := ar.Int32()
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
	assert.Error(t, ar.Skip(1))

	ar.SetLimit(prev)
	require.NoError(t, ar.Skip(4))
	assert.Zero(t, ar.Remaining())

	assert.Error(t, ar.SeekTo(9))
	require.NoError(t, ar.SeekTo(0))
	assert.Zero(t, ar.Tell())
	assert.Error(t, ar.SetStopper(-1))
	require.NoError(t, ar.SetStopper(4))
	assert.EqualValues(t, 4, ar.Stopper())
}

func TestCount(t *testing.T) {
	for _, v := range both {
		t.Run(v.String(), func(t *testing.T) {
			ar := Stream{Count(3), Zero(12)}.Archive(v)
			n, err := ar.Count(4)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			// Three elements of at least five bytes cannot fit in twelve.
			ar = Stream{Count(3), Zero(12)}.Archive(v)
			_, err = ar.Count(5)
			assert.True(t, errors.Is(err, errors.ErrCorruptData))

			ar = Stream{Count(-1)}.Archive(v)
			_, err = ar.Count(0)
			assert.True(t, errors.Is(err, errors.ErrCorruptData))

			ar = Stream{Count(1000)}.Archive(v, archive.WithMaxArrayLen(999))
			_, err = ar.Count(0)
			assert.True(t, errors.Is(err, errors.ErrCorruptData))
		})
	}
}

func TestArray(t *testing.T) {
	ar := Stream{Array(Int32(4), Int32(5), Int32(6))}.Archive(ut2)
	s, err := archive.Array(ar, 4, (*archive.Archive).Int32)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5, 6}, s)

	// A count that fits the guard but whose elements run out.
	ar = Stream{Count(3), Int32(4), Int32(5), Uint16(6)}.Archive(ut2)
	s, err = archive.Array(ar, 2, (*archive.Archive).Int32)
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
	assert.Equal(t, []int32{4, 5}, s)
}

func TestStr(t *testing.T) {
	for _, v := range both {
		t.Run(v.String(), func(t *testing.T) {
			// UTF-16 "Hé" with terminator.
			var wide Stream
			if v.Modern() {
				wide = Stream{Int32(-3)}
			} else {
				wide = Stream{Index(-3)}
			}
			wide = append(wide, Uint16('H'), Uint16(0xE9), Uint16(0))

			ar := append(Stream{Str("Rock_Diffuse"), Str("")}, wide...).Archive(v)
			s, err := ar.Str()
			require.NoError(t, err)
			assert.Equal(t, "Rock_Diffuse", s)
			s, err = ar.Str()
			require.NoError(t, err)
			assert.Empty(t, s)
			s, err = ar.Str()
			require.NoError(t, err)
			assert.Equal(t, "Hé", s)
		})
	}

	ar := Stream{Int32(100), Bytes("short\x00")}.Archive(ue3)
	_, err := ar.Str()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
}

func TestName(t *testing.T) {
	ar := Stream{Name("Diffuse"), Int32(0), Int32(0)}.Archive(ue3)
	s, err := ar.Name()
	require.NoError(t, err)
	assert.Equal(t, "Diffuse", s)

	// Instance number 3 renders as suffix 2.
	data, _ := Stream{Int32(0), Int32(3), Int32(5), Int32(0)}.Declare(ue3)
	ar = archive.New(data, ue3, archive.WithNames(archive.Names{"Mip"}))
	s, err = ar.Name()
	require.NoError(t, err)
	assert.Equal(t, "Mip_2", s)
	_, err = ar.Name()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))

	ar = archive.New(data, ue3)
	_, err = ar.Name()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
}

func TestObject(t *testing.T) {
	ar := Stream{Ref(-3), Ref(70)}.Archive(ut2)
	r, err := ar.Object()
	require.NoError(t, err)
	assert.EqualValues(t, -3, r)
	r, _ = ar.Object()
	assert.EqualValues(t, 70, r)
	assert.Zero(t, ar.Remaining())
}

func TestLazyArray(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for _, v := range []archive.Version{ue1, ut2} {
		t.Run(v.String(), func(t *testing.T) {
			ar := Stream{Zero(3), Lazy{ElemSize: 2, Payload: payload}, Int32(9)}.Archive(v)
			require.NoError(t, ar.Skip(3))
			h, err := ar.LazyArray(2)
			require.NoError(t, err)
			assert.EqualValues(t, 8, h.RawSize)
			assert.EqualValues(t, 8, h.StoredSize)
			assert.Equal(t, bulk.Lazy, h.Flags)

			next, err := ar.Int32()
			require.NoError(t, err)
			assert.EqualValues(t, 9, next)
			assert.EqualValues(t, ar.Tell()-4-8, h.Offset)
		})
	}
}

func TestBulkData(t *testing.T) {
	payload := []byte("0123456789")
	ar := Stream{
		Inline(payload),
		Bulk{Flags: bulk.StoreInSeparateFile, RawSize: 64, Stored: make([]byte, 32), Offset: 4096},
		Bulk{Flags: bulk.Unused},
		Int32(7),
	}.Archive(ue3)

	h, err := ar.BulkData()
	require.NoError(t, err)
	assert.EqualValues(t, 16, h.Offset)
	assert.EqualValues(t, 10, h.StoredSize)

	h, err = ar.BulkData()
	require.NoError(t, err)
	assert.True(t, h.Separate())
	assert.EqualValues(t, 4096, h.Offset)
	assert.EqualValues(t, 32, h.StoredSize)
	assert.EqualValues(t, 64, h.RawSize)

	h, err = ar.BulkData()
	require.NoError(t, err)
	assert.True(t, h.Empty())

	v, err := ar.Int32()
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)

	ar = Stream{Bulk{RawSize: 100, Stored: make([]byte, 100)}}.Archive(ue3)
	ar.SetLimit(50)
	_, err = ar.BulkData()
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
}

func TestVengeanceHeader(t *testing.T) {
	bio := archive.Version{Game: archive.Bioshock, Ver: 141, LicenseeVer: 56}
	ar := Stream{Int32(3), Int32(1)}.Archive(bio)
	ver, sub, err := ar.VengeanceHeader(0x2E)
	require.NoError(t, err)
	assert.EqualValues(t, 3, ver)
	assert.EqualValues(t, 1, sub)

	// Below the licensee version the header is absent.
	ar = Stream{Int32(3), Int32(1)}.Archive(bio)
	ver, _, err = ar.VengeanceHeader(57)
	require.NoError(t, err)
	assert.Zero(t, ver)
	assert.Zero(t, ar.Tell())
}

func TestCond(t *testing.T) {
	for _, tc := range []struct {
		name string
		cond archive.Cond
		v    archive.Version
		want bool
	}{
		{"zero", archive.Cond{}, ue3, true},
		{"engine", archive.Cond{Games: []archive.Game{archive.UE3}}, archive.Version{Game: archive.Borderlands}, true},
		{"other engine", archive.Cond{Games: []archive.Game{archive.UE2}}, ue3, false},
		{"game", archive.Cond{Games: []archive.Game{archive.Tera}}, ue3, false},
		{"since", archive.Cond{Ver: archive.Since(297)}, archive.Version{Game: archive.UE3, Ver: 297}, true},
		{"before", archive.Cond{Ver: archive.Before(297)}, archive.Version{Game: archive.UE3, Ver: 297}, false},
		{"below before", archive.Cond{Ver: archive.Before(297)}, archive.Version{Game: archive.UE3, Ver: 296}, true},
		{"before zero", archive.Cond{Ver: archive.Before(0)}, ue3, false},
		{"before zero at zero", archive.Cond{Ver: archive.Before(0)}, archive.Version{Game: archive.UE3}, false},
		{"licensee", archive.Cond{LicenseeVer: archive.Range{Min: 0x10, Max: 0x26}}, archive.Version{Game: archive.Lineage2, LicenseeVer: 0x25}, true},
		{"func", archive.Cond{Func: func(v archive.Version) bool { return v.LicenseeVer&1 == 1 }}, ut2, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.cond.Match(tc.v))
		})
	}
}

func TestGame(t *testing.T) {
	g, ok := archive.ParseGame("bioshock")
	require.True(t, ok)
	assert.Equal(t, archive.Bioshock, g)
	assert.Equal(t, archive.Vengeance, g.Engine())
	assert.False(t, g.IsEngine())
	assert.True(t, archive.UE2.IsEngine())
	assert.Contains(t, archive.Games(), "Borderlands")
	_, ok = archive.ParseGame("nope")
	assert.False(t, ok)
}
