package render

import (
	"image"
	"image/color"

	"crimson-sprawl/internal/core"
)

// FillPalette converts palette indices into RGBA pixels in buf. Indices past
// the end of the palette use its last colour; an empty palette clears the
// buffer to transparent black. buf must hold 4*len(cells) bytes.
func FillPalette(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Upscale writes src (w*h RGBA pixels) into dst with every source pixel
// expanded to a scale*scale block. dst must hold 4*w*h*scale*scale bytes.
func Upscale(dst, src []byte, w, h, scale int) {
	if scale <= 1 {
		copy(dst, src)
		return
	}
	rowBytes := w * scale * 4
	for y := 0; y < h; y++ {
		row := dst[y*scale*rowBytes : (y*scale+1)*rowBytes]
		for x := 0; x < w; x++ {
			px := src[(y*w+x)*4 : (y*w+x)*4+4]
			for s := 0; s < scale; s++ {
				copy(row[(x*scale+s)*4:], px)
			}
		}
		for s := 1; s < scale; s++ {
			copy(dst[(y*scale+s)*rowBytes:], row)
		}
	}
}

// Image renders a palette-indexed raster into an RGBA image with every cell
// drawn as a scale*scale block.
func Image(size core.Size, cells []uint8, palette []color.RGBA, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	if size.Cells() == 0 || len(cells) != size.Cells() {
		return img
	}
	buf := make([]byte, 4*len(cells))
	FillPalette(buf, cells, palette)
	Upscale(img.Pix, buf, size.W, size.H, scale)
	return img
}
