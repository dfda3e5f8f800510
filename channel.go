package edf2cfs

import (
	"strings"

	"github.com/samber/lo"

	"github.com/amiyapatanaik/edf2cfs/decode"
)

// ChannelSelection binds each of the four logical roles to a
// user-supplied EDF signal label (spec §3).
type ChannelSelection struct {
	C3 string
	C4 string
	EL string
	ER string
}

// ResolvedChannel is one role's outcome from channel resolution: the
// physical channel's index within the EDF signal list, its
// microvolt scale factor, and its nominal sample rate.
type ResolvedChannel struct {
	Index int
	Scale float64
	Rate  float64
}

// ResolvedChannels holds the four resolved roles (spec §4.1).
type ResolvedChannels struct {
	C3 ResolvedChannel
	C4 ResolvedChannel
	EL ResolvedChannel
	ER ResolvedChannel
}

// unitScale maps an EDF physical-dimension string to its microvolt
// scale factor. Matching is prefix-based on the first two characters
// ({"nV", "uV", "mV"}); the single-character "V" case is the
// fallback (spec §3 PhysicalUnit).
func unitScale(unit string) (float64, bool) {
	if len(unit) >= 2 {
		switch strings.ToLower(unit[:2]) {
		case "nv":
			return 0.001, true
		case "uv":
			return 1.0, true
		case "mv":
			return 1000.0, true
		}
	}
	if len(unit) >= 1 && strings.EqualFold(unit[:1], "v") {
		return 1_000_000.0, true
	}
	return 0, false
}

// findByLabel returns the first signal whose label matches the
// requested label case-insensitively, in ascending index order
// (spec §4.1: "first match wins by index order").
func findByLabel(signals []decode.SignalMeta, label string) (decode.SignalMeta, bool) {
	target := strings.ToLower(label)
	match, _, ok := lo.FindIndexOf(signals, func(s decode.SignalMeta) bool {
		return strings.ToLower(s.Label) == target
	})
	return match, ok
}

// resolveRole finds the signal bound to role's label and derives its
// microvolt scale factor.
func resolveRole(role Role, label string, signals []decode.SignalMeta) (ResolvedChannel, error) {
	sig, ok := findByLabel(signals, label)
	if !ok {
		return ResolvedChannel{}, LabelNotFound(role)
	}
	scale, ok := unitScale(sig.PhysicalUnit)
	if !ok {
		return ResolvedChannel{}, UnsupportedUnit(role, sig.PhysicalUnit)
	}
	return ResolvedChannel{Index: sig.Index, Scale: scale, Rate: sig.Rate()}, nil
}

// ResolveChannels matches the four requested role labels against the
// EDF signal list, deriving a channel index and microvolt scale
// factor per role, and enforces that C3 and C4 share a sample rate
// (spec §4.1).
func ResolveChannels(sel ChannelSelection, signals []decode.SignalMeta) (ResolvedChannels, error) {
	c3, err := resolveRole(RoleC3, sel.C3, signals)
	if err != nil {
		return ResolvedChannels{}, err
	}
	c4, err := resolveRole(RoleC4, sel.C4, signals)
	if err != nil {
		return ResolvedChannels{}, err
	}
	el, err := resolveRole(RoleEL, sel.EL, signals)
	if err != nil {
		return ResolvedChannels{}, err
	}
	er, err := resolveRole(RoleER, sel.ER, signals)
	if err != nil {
		return ResolvedChannels{}, err
	}

	if int(c3.Rate) != int(c4.Rate) {
		return ResolvedChannels{}, NewJobError(ErrChannelRateMismatch)
	}

	return ResolvedChannels{C3: c3, C4: c4, EL: el, ER: er}, nil
}

// RawChannel is a dense ordered sequence of samples already scaled to
// microvolts (spec §3).
type RawChannel []float64

// ExtractMicrovolts reads channel's physical-unit samples from src and
// scales them to microvolts using the resolved scale factor.
func ExtractMicrovolts(src *decode.File, ch ResolvedChannel, label string) (RawChannel, error) {
	physical, err := src.ExtractPhysical(ch.Index)
	if err != nil {
		return nil, ReadFailure(label, err)
	}
	out := make(RawChannel, len(physical))
	for i, v := range physical {
		out[i] = v * ch.Scale
	}
	return out, nil
}
