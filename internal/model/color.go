package model

// Color is an 8-bit RGB triple. Alpha is applied separately by the
// rasterizer, since the same owner color is drawn at different alphas
// depending on influence strength and border detection.
type Color struct {
	R, G, B uint8
}
