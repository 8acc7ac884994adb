package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Kage shader for Gaussian blur (horizontal pass)
// Uses 9-tap Gaussian kernel (fixed size for Kage compatibility)
var blurHorizontalShader = []byte(`
//kage:unit pixels

package main

var Sigma float  // Controls blur strength (pixel spread)

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    // 9-tap Gaussian blur weights (precomputed, sums to 1.0)
    var result vec4

    result += imageSrc0At(srcPos + vec2(-4*Sigma, 0)) * 0.0162
    result += imageSrc0At(srcPos + vec2(-3*Sigma, 0)) * 0.0540
    result += imageSrc0At(srcPos + vec2(-2*Sigma, 0)) * 0.1218
    result += imageSrc0At(srcPos + vec2(-1*Sigma, 0)) * 0.1954
    result += imageSrc0At(srcPos + vec2(0, 0)) * 0.2252
    result += imageSrc0At(srcPos + vec2(1*Sigma, 0)) * 0.1954
    result += imageSrc0At(srcPos + vec2(2*Sigma, 0)) * 0.1218
    result += imageSrc0At(srcPos + vec2(3*Sigma, 0)) * 0.0540
    result += imageSrc0At(srcPos + vec2(4*Sigma, 0)) * 0.0162

    return result
}
`)

// Kage shader for Gaussian blur (vertical pass)
var blurVerticalShader = []byte(`
//kage:unit pixels

package main

var Sigma float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
    var result vec4

    result += imageSrc0At(srcPos + vec2(0, -4*Sigma)) * 0.0162
    result += imageSrc0At(srcPos + vec2(0, -3*Sigma)) * 0.0540
    result += imageSrc0At(srcPos + vec2(0, -2*Sigma)) * 0.1218
    result += imageSrc0At(srcPos + vec2(0, -1*Sigma)) * 0.1954
    result += imageSrc0At(srcPos + vec2(0, 0)) * 0.2252
    result += imageSrc0At(srcPos + vec2(0, 1*Sigma)) * 0.1954
    result += imageSrc0At(srcPos + vec2(0, 2*Sigma)) * 0.1218
    result += imageSrc0At(srcPos + vec2(0, 3*Sigma)) * 0.0540
    result += imageSrc0At(srcPos + vec2(0, 4*Sigma)) * 0.0162

    return result
}
`)

// BlurEffect renders frosted-glass modal backdrops with a separable
// two-pass Gaussian blur.
type BlurEffect struct {
	blurH   *ebiten.Shader
	blurV   *ebiten.Shader
	tempH   *ebiten.Image // Horizontal blur result
	tempV   *ebiten.Image // Vertical blur result
	enabled bool
}

// NewBlurEffect creates a new blur effect manager.
func NewBlurEffect() *BlurEffect {
	be := &BlurEffect{
		enabled: true,
	}

	var err error
	be.blurH, err = ebiten.NewShader(blurHorizontalShader)
	if err != nil {
		be.enabled = false
		return be
	}

	be.blurV, err = ebiten.NewShader(blurVerticalShader)
	if err != nil {
		be.enabled = false
		return be
	}

	return be
}

// IsEnabled returns whether the blur shaders compiled.
func (be *BlurEffect) IsEnabled() bool {
	return be != nil && be.enabled
}

// ensureImages creates or resizes offscreen images as needed.
func (be *BlurEffect) ensureImages(w, h int) {
	if be.tempH == nil || be.tempH.Bounds().Dx() != w || be.tempH.Bounds().Dy() != h {
		be.tempH = ebiten.NewImage(w, h)
	}
	if be.tempV == nil || be.tempV.Bounds().Dx() != w || be.tempV.Bounds().Dy() != h {
		be.tempV = ebiten.NewImage(w, h)
	}
}

// DrawFrosted blurs the given screen region and tints it.
// x, y, w, h are in screen coordinates (already scaled).
// sigma controls blur strength (1.0-4.0 recommended).
func (be *BlurEffect) DrawFrosted(screen *ebiten.Image, x, y, w, h int, tint color.RGBA, sigma float64) {
	if w <= 0 || h <= 0 {
		return
	}

	if !be.IsEnabled() {
		be.drawFallback(screen, x, y, w, h, tint)
		return
	}

	// Ensure temp images are correct size
	be.ensureImages(w, h)

	// Capture the region from screen to tempH
	be.tempH.Clear()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(-x), float64(-y))
	be.tempH.DrawImage(screen, op)

	// Apply horizontal blur: tempH -> tempV
	be.tempV.Clear()
	blurOpH := &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]interface{}{
			"Sigma": float32(sigma),
		},
		Images: [4]*ebiten.Image{be.tempH},
	}
	be.tempV.DrawRectShader(w, h, be.blurH, blurOpH)

	// Apply vertical blur: tempV -> tempH
	be.tempH.Clear()
	blurOpV := &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]interface{}{
			"Sigma": float32(sigma),
		},
		Images: [4]*ebiten.Image{be.tempV},
	}
	be.tempH.DrawRectShader(w, h, be.blurV, blurOpV)

	// Draw the blurred region back, then tint it
	blitOp := &ebiten.DrawImageOptions{}
	blitOp.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(be.tempH, blitOp)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), tint, false)
}

// drawFallback draws a plain overlay when shaders are unavailable.
func (be *BlurEffect) drawFallback(screen *ebiten.Image, x, y, w, h int, tint color.RGBA) {
	c := tint
	if c.A < 230 {
		c.A = 230 // More opaque without the blur to keep text readable
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}
