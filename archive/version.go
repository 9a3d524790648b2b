package archive

import "fmt"

// Version is the version metadata carried by an archive.
type Version struct {
	// Game selects the fork whose format rules apply.
	Game Game
	// Ver is the engine's package version.
	Ver int
	// LicenseeVer is the vendor-specific sub-version.
	LicenseeVer int
}

// Engine returns the engine generation of the version's game.
func (v Version) Engine() Game {
	return v.Game.Engine()
}

// Modern returns whether the version uses the third-generation layouts.
func (v Version) Modern() bool {
	return v.Game.Engine() >= UE3
}

func (v Version) String() string {
	return fmt.Sprintf("%s ver %d/%d", v.Game, v.Ver, v.LicenseeVer)
}

// Range is a half-open range of version numbers [Min, Max). A zero Max leaves
// the range unbounded above, so the zero Range contains every version.
type Range struct {
	Min, Max int
}

// Since returns the range of versions at least min.
func Since(min int) Range {
	return Range{Min: min}
}

// Before returns the range of versions below max. Before(0) is empty rather
// than the unbounded Range{Max: 0}.
func Before(max int) Range {
	if max == 0 {
		return Range{Min: 1, Max: 1}
	}
	return Range{Min: -1 << 31, Max: max}
}

// Contains returns whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && (r.Max == 0 || v < r.Max)
}

// Cond is a predicate over version metadata. Every set field must hold for
// the condition to match.
type Cond struct {
	// Games lists the games the condition applies to. An engine generation in
	// the list matches every game of that generation. An empty list matches
	// any game.
	Games []Game
	// Ver constrains the engine version.
	Ver Range
	// LicenseeVer constrains the licensee version.
	LicenseeVer Range
	// Func is an additional predicate for conditions that cannot be
	// expressed as ranges.
	Func func(Version) bool
}

// Match returns whether the condition holds for v.
func (c Cond) Match(v Version) bool {
	if len(c.Games) > 0 {
		ok := false
		for _, g := range c.Games {
			if v.Game == g || g.IsEngine() && v.Game.Engine() == g {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if !c.Ver.Contains(v.Ver) || !c.LicenseeVer.Contains(v.LicenseeVer) {
		return false
	}
	return c.Func == nil || c.Func(v)
}
