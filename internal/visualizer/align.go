package visualizer

import (
	"errors"
	"fmt"
)

// ErrUnknownAnchor is returned for an alignment anchor outside the nine
// canonical positions.
var ErrUnknownAnchor = errors.New("unknown alignment anchor")

// Anchor names one of the nine canonical alignment positions.
type Anchor string

const (
	AnchorTopLeft     Anchor = "top-left"
	AnchorTop         Anchor = "top"
	AnchorTopRight    Anchor = "top-right"
	AnchorLeft        Anchor = "left"
	AnchorCenter      Anchor = "center"
	AnchorRight       Anchor = "right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottom      Anchor = "bottom"
	AnchorBottomRight Anchor = "bottom-right"
)

// Anchors lists every anchor in context-menu order.
var Anchors = []Anchor{
	AnchorTopLeft, AnchorTop, AnchorTopRight,
	AnchorLeft, AnchorCenter, AnchorRight,
	AnchorBottomLeft, AnchorBottom, AnchorBottomRight,
}

type axisPlacement int

const (
	placeNear axisPlacement = iota
	placeMiddle
	placeFar
)

var anchorPlacements = map[Anchor][2]axisPlacement{
	AnchorTopLeft:     {placeNear, placeNear},
	AnchorTop:         {placeMiddle, placeNear},
	AnchorTopRight:    {placeFar, placeNear},
	AnchorLeft:        {placeNear, placeMiddle},
	AnchorCenter:      {placeMiddle, placeMiddle},
	AnchorRight:       {placeFar, placeMiddle},
	AnchorBottomLeft:  {placeNear, placeFar},
	AnchorBottom:      {placeMiddle, placeFar},
	AnchorBottomRight: {placeFar, placeFar},
}

// ComputePosition returns the center offset that places the area at anchor.
func ComputePosition(anchor Anchor, tabletW, tabletH, areaW, areaH float64) (AreaOffset, error) {
	p, ok := anchorPlacements[anchor]
	if !ok {
		return AreaOffset{}, fmt.Errorf("%w: %q", ErrUnknownAnchor, anchor)
	}
	return AreaOffset{
		X: place(p[0], tabletW, areaW/2),
		Y: place(p[1], tabletH, areaH/2),
	}, nil
}

func place(p axisPlacement, tabletDim, half float64) float64 {
	switch p {
	case placeNear:
		return half
	case placeFar:
		return tabletDim - half
	default:
		return tabletDim / 2
	}
}
