package conv

// Strategy identifies the execution strategy for one invocation. Chosen once
// per call from filter/stride/dilation/channel facts and immutable for the
// call's duration.
type Strategy int

// Strategies, fastest-but-most-specific first.
const (
	Winograd Strategy = iota
	Fixed3x3S1
	Fixed3x3S2
	Fixed1x1S1
	GenericDirect
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case Winograd:
		return "winograd"
	case Fixed3x3S1:
		return "fixed-3x3-s1"
	case Fixed3x3S2:
		return "fixed-3x3-s2"
	case Fixed1x1S1:
		return "fixed-1x1-s1"
	case GenericDirect:
		return "generic-direct"
	default:
		return "unknown"
	}
}

// minWinogradChannels is the channel count below which the Winograd transform
// overhead is not amortized.
const minWinogradChannels = 8

// SelectStrategy picks the execution strategy, first match wins.
func SelectStrategy(filterH, filterW, strideH, strideW, dilationH, dilationW,
	inC, outC int, preTransformed bool) Strategy {

	stride1 := strideH == 1 && strideW == 1
	dilation1 := dilationH == 1 && dilationW == 1
	filter3x3 := filterH == 3 && filterW == 3

	switch {
	case preTransformed ||
		(filter3x3 && stride1 && dilation1 &&
			inC >= minWinogradChannels && outC >= minWinogradChannels):
		return Winograd
	case filter3x3 && stride1 && dilation1:
		return Fixed3x3S1
	case filter3x3 && strideH == 2 && strideW == 2 && dilation1:
		return Fixed3x3S2
	case filterH == 1 && filterW == 1 && stride1 && dilation1:
		return Fixed1x1S1
	default:
		return GenericDirect
	}
}

// WinogradOutTileSize returns the output tile size for the Winograd strategy.
// Larger feature maps amortize the transform cost better with the bigger
// tile.
func WinogradOutTileSize(inH, inW int) int {
	if inH > 16 && inW > 16 {
		return 6
	}
	return 2
}
