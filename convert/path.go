package convert

import (
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// Direction tells which way along the registry a conversion path moves.
type Direction int

const (
	// DirectionNone means source and target version are the same.
	DirectionNone Direction = iota
	// DirectionUpgrade moves toward later versions.
	DirectionUpgrade
	// DirectionDowngrade moves toward earlier versions.
	DirectionDowngrade
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionUpgrade:
		return "upgrade"
	case DirectionDowngrade:
		return "downgrade"
	default:
		return "unknown"
	}
}

// Hop is one adjacent-version move within a path.
type Hop struct {
	From version.Version
	To   version.Version
}

// Path is the ordered list of adjacent hops from a source version to a
// target version. An empty path means the versions are equal.
type Path struct {
	Direction Direction
	Hops      []Hop
}

// ResolvePath computes the hops needed to move an object from one declared
// version to another. The registry is a single ordered axis, so the path is
// always the contiguous slice of versions between the two endpoints; no
// search is involved. Versions outside the registry produce
// ErrUnknownAPIVersion.
func ResolvePath(reg *version.Registry, from, to version.Version) (Path, error) {
	fromIdx := reg.Index(from)
	if fromIdx < 0 {
		return Path{}, &vererrors.ConversionError{
			ObjectIndex: -1,
			APIVersion:  from.String(),
			Message:     "version is not declared in the registry",
			Cause:       vererrors.ErrUnknownAPIVersion,
		}
	}
	toIdx := reg.Index(to)
	if toIdx < 0 {
		return Path{}, &vererrors.ConversionError{
			ObjectIndex: -1,
			APIVersion:  to.String(),
			Message:     "version is not declared in the registry",
			Cause:       vererrors.ErrUnknownAPIVersion,
		}
	}

	switch {
	case fromIdx == toIdx:
		return Path{Direction: DirectionNone}, nil
	case fromIdx < toIdx:
		hops := make([]Hop, 0, toIdx-fromIdx)
		for i := fromIdx; i < toIdx; i++ {
			hops = append(hops, Hop{From: reg.At(i).Version, To: reg.At(i + 1).Version})
		}
		return Path{Direction: DirectionUpgrade, Hops: hops}, nil
	default:
		hops := make([]Hop, 0, fromIdx-toIdx)
		for i := fromIdx; i > toIdx; i-- {
			hops = append(hops, Hop{From: reg.At(i).Version, To: reg.At(i - 1).Version})
		}
		return Path{Direction: DirectionDowngrade, Hops: hops}, nil
	}
}
