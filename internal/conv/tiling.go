package conv

// tilePlan captures the working extents and the four-way pad split for one
// invocation. Extension beyond the originally padded extent is appended
// entirely to the trailing (bottom/right) pads.
type tilePlan struct {
	padTop, padBottom, padLeft, padRight int
	extraInH, extraInW                   int
	extraOutH, extraOutW                 int
}

// planTiling extends the working extents to the strategy's tile boundaries.
// outTile is only meaningful for the Winograd strategy.
func planTiling(s Strategy, outTile, padH, padW, inH, inW, outH, outW int) tilePlan {
	p := tilePlan{
		padTop:    padH / 2,
		padLeft:   padW / 2,
		extraOutH: outH,
		extraOutW: outW,
	}
	p.padBottom = padH - p.padTop
	p.padRight = padW - p.padLeft

	paddedH := inH + padH
	paddedW := inW + padW
	p.extraInH, p.extraInW = paddedH, paddedW

	switch s {
	case Winograd:
		p.extraOutH = roundUp(outH, outTile)
		p.extraOutW = roundUp(outW, outTile)
		p.extraInH = max(paddedH, p.extraOutH+2)
		p.extraInW = max(paddedW, p.extraOutW+2)
	case Fixed3x3S1:
		p.extraOutH = roundUp(outH, 2)
		p.extraOutW = roundUp(outW, 4)
		p.extraInH = max(paddedH, p.extraOutH+2)
		p.extraInW = max(paddedW, p.extraOutW+2)
	case Fixed3x3S2:
		p.extraOutW = roundUp(outW, 4)
		p.extraInH = max(paddedH, (p.extraOutH-1)*2+3)
		p.extraInW = max(paddedW, (p.extraOutW-1)*2+3)
	}

	p.padBottom += p.extraInH - paddedH
	p.padRight += p.extraInW - paddedW
	return p
}

// needsPaddedInput reports whether the working input differs from the
// original input and must be materialized.
func (p tilePlan) needsPaddedInput(inH, inW int) bool {
	return p.extraInH != inH || p.extraInW != inW
}

// needsPaddedOutput reports whether the working output is larger than the
// true output and must be unpacked afterwards.
func (p tilePlan) needsPaddedOutput(outH, outW int) bool {
	return p.extraOutH != outH || p.extraOutW != outW
}

func roundUp(x, multiple int) int {
	return (x + multiple - 1) / multiple * multiple
}
