// Package chainparams defines the three named networks the Social
// Consensus Engine runs on and the constants that vary between them.
package chainparams

import "fmt"

// Network identifies one of the three named networks from spec.md §6.
type Network string

const (
	Main    Network = "main"
	Test    Network = "test"
	Regtest Network = "regtest"
)

// Params carries the network-specific constants consumed throughout the
// engine: message-start magics and ports belong to the underlying UTXO
// engine (a non-goal) and are recorded here only because the checkpoint
// tables and badge cadence are keyed by network name.
type Params struct {
	Name Network

	// MessageStart is the four-byte P2P magic for this network.
	MessageStart [4]byte

	// DefaultPort is the network's default P2P listen port.
	DefaultPort string

	// PubKeyHashAddrID / ScriptHashAddrID are the base58 version bytes
	// used to decode Account.address.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte

	// PoSActivationHeight is the height at which proof-of-stake block
	// production (and therefore the Lottery, L8) begins.
	PoSActivationHeight int32

	// StakeMinAge is the minimum coin age, in seconds, for a UTXO to be
	// eligible as a stake kernel input.
	StakeMinAge int64

	// BadgePeriod is the block interval on which shark/whale/moderator
	// badges (§4.6) are recomputed.
	BadgePeriod int32

	// HeightFixRatings is the activation height of the AllowModifyReputation
	// switch spec.md §9 requires reproduced verbatim: below this height the
	// predicate evaluates the content author's account data; at or above
	// it, the voter's (spec.md "Open question").
	HeightFixRatings int32

	// BlockTimeSeconds is the target spacing between blocks, used to
	// translate the pre-checkpoint wall-clock content windows (spec.md §9,
	// "Deep inheritance of consensus rules") into a height delta.
	BlockTimeSeconds int64
}

var (
	MainNetParams = Params{
		Name:                Main,
		MessageStart:        [4]byte{0xf9, 0xbe, 0xb4, 0xd9},
		DefaultPort:         "8627",
		PubKeyHashAddrID:    0x37,
		ScriptHashAddrID:    0x0a,
		PoSActivationHeight: 1020,
		StakeMinAge:         60 * 60 * 8,
		BadgePeriod:         1440,
		HeightFixRatings:    1324655,
		BlockTimeSeconds:    60,
	}

	TestNetParams = Params{
		Name:                Test,
		MessageStart:        [4]byte{0x0b, 0x11, 0x09, 0x07},
		DefaultPort:         "18627",
		PubKeyHashAddrID:    0x6f,
		ScriptHashAddrID:    0xc4,
		PoSActivationHeight: 1020,
		StakeMinAge:         60 * 60,
		BadgePeriod:         100,
		HeightFixRatings:    200000,
		BlockTimeSeconds:    60,
	}

	RegtestParams = Params{
		Name:                Regtest,
		MessageStart:        [4]byte{0xfa, 0xbf, 0xb5, 0xda},
		DefaultPort:         "18827",
		PubKeyHashAddrID:    0x6f,
		ScriptHashAddrID:    0xc4,
		PoSActivationHeight: 200,
		StakeMinAge:         60,
		BadgePeriod:         5,
		HeightFixRatings:    0,
		BlockTimeSeconds:    60,
	}
)

// ByName resolves a network by its configuration name ("main", "test", "regtest").
func ByName(name string) (Params, error) {
	switch Network(name) {
	case Main:
		return MainNetParams, nil
	case Test:
		return TestNetParams, nil
	case Regtest:
		return RegtestParams, nil
	default:
		return Params{}, fmt.Errorf("chainparams: unknown network %q", name)
	}
}
