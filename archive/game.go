package archive

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Game identifies an engine generation or a vendor fork of one. The high bits
// of a value select the engine generation, and the low byte selects a game
// within it. A value whose low byte is zero names the generation itself.
type Game uint32

// engineMask selects the engine generation of a Game.
const engineMask Game = 0xFFF00

const Unknown Game = 0

const (
	UE1 Game = 0x01000 + iota
	Undying
)

const (
	UE2 Game = 0x02000 + iota
	UT2
	Pariah
	SplinterCell
	Lineage2
	Exteel
	Ragnarok2
	RepCommando
	Loco
	BattleTerr
	UC1
	XIII
	Vanguard
	AA2
	EOS
)

const (
	Vengeance Game = 0x02100 + iota
	Tribes3
	Swat4
	Bioshock
)

const (
	UE2X Game = 0x04000 + iota
	UC2
)

const (
	UE3 Game = 0x08000 + iota
	EndWar
	MassEffect
	MassEffect2
	R6Vegas2
	MirrorEdge
	TLR
	Huxley
	Turok
	Fury
	XMen
	MagnaCarta
	ArmyOf2
	CrimeCraft
	AVA
	Frontlines
	Batman
	Borderlands
	AA3
	DarkVoid
	Legendary
	Tera
	BladeNSoul
	APB
	AlphaProtocol
	Transformers
	MortalOnline
	Enslaved
	MOHA
	DCUniverse
	Bulletstorm
	Homefront
)

// Engine returns the engine generation of g.
func (g Game) Engine() Game {
	return g & engineMask
}

// IsEngine returns whether g names an engine generation rather than a game.
func (g Game) IsEngine() bool {
	return g != Unknown && g == g.Engine()
}

var gameNames = map[Game]string{
	Unknown:       "Unknown",
	UE1:           "UE1",
	Undying:       "Undying",
	UE2:           "UE2",
	UT2:           "UT2",
	Pariah:        "Pariah",
	SplinterCell:  "SplinterCell",
	Lineage2:      "Lineage2",
	Exteel:        "Exteel",
	Ragnarok2:     "Ragnarok2",
	RepCommando:   "RepCommando",
	Loco:          "Loco",
	BattleTerr:    "BattleTerr",
	UC1:           "UC1",
	XIII:          "XIII",
	Vanguard:      "Vanguard",
	AA2:           "AA2",
	EOS:           "EOS",
	Vengeance:     "Vengeance",
	Tribes3:       "Tribes3",
	Swat4:         "Swat4",
	Bioshock:      "Bioshock",
	UE2X:          "UE2X",
	UC2:           "UC2",
	UE3:           "UE3",
	EndWar:        "EndWar",
	MassEffect:    "MassEffect",
	MassEffect2:   "MassEffect2",
	R6Vegas2:      "R6Vegas2",
	MirrorEdge:    "MirrorEdge",
	TLR:           "TLR",
	Huxley:        "Huxley",
	Turok:         "Turok",
	Fury:          "Fury",
	XMen:          "XMen",
	MagnaCarta:    "MagnaCarta",
	ArmyOf2:       "ArmyOf2",
	CrimeCraft:    "CrimeCraft",
	AVA:           "AVA",
	Frontlines:    "Frontlines",
	Batman:        "Batman",
	Borderlands:   "Borderlands",
	AA3:           "AA3",
	DarkVoid:      "DarkVoid",
	Legendary:     "Legendary",
	Tera:          "Tera",
	BladeNSoul:    "BladeNSoul",
	APB:           "APB",
	AlphaProtocol: "AlphaProtocol",
	Transformers:  "Transformers",
	MortalOnline:  "MortalOnline",
	Enslaved:      "Enslaved",
	MOHA:          "MOHA",
	DCUniverse:    "DCUniverse",
	Bulletstorm:   "Bulletstorm",
	Homefront:     "Homefront",
}

var gamesByName = lo.MapKeys(lo.Invert(gameNames), func(_ Game, name string) string {
	return strings.ToLower(name)
})

func (g Game) String() string {
	if name, ok := gameNames[g]; ok {
		return name
	}
	if name, ok := gameNames[g.Engine()]; ok {
		return fmt.Sprintf("%s+%d", name, g-g.Engine())
	}
	return fmt.Sprintf("Game(0x%X)", uint32(g))
}

// ParseGame returns the Game with the given case-insensitive name.
func ParseGame(name string) (Game, bool) {
	g, ok := gamesByName[strings.ToLower(name)]
	return g, ok
}

// Games returns the names of all known games, in no particular order.
func Games() []string {
	return lo.Values(gameNames)
}
