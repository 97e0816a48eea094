package engine

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
)

// channelExts are tried in order when resolving a channel side file.
var channelExts = []string{"png", "jpg", "jpeg", "bmp"}

type channelTexture struct {
	id     uint32
	width  int
	height int
}

// ChannelPaths returns the candidate side-file paths for channel n of the
// given shader source path, in probe order.
func ChannelPaths(shaderPath string, n int) []string {
	stem := strings.TrimSuffix(shaderPath, filepath.Ext(shaderPath))
	paths := make([]string, 0, len(channelExts))
	for _, ext := range channelExts {
		paths = append(paths, fmt.Sprintf("%s.channel%d.%s", stem, n, ext))
	}
	return paths
}

// loadChannels probes the side files for all four channels. A missing file
// is not an error; that channel stays unbound.
func loadChannels(shaderPath string) [4]channelTexture {
	var out [4]channelTexture
	for n := 0; n < 4; n++ {
		for _, path := range ChannelPaths(shaderPath, n) {
			tex, err := loadTexture(path)
			if err != nil {
				if !os.IsNotExist(err) {
					log.Printf("Channel %d: skipping %s: %v", n, path, err)
				}
				continue
			}
			out[n] = tex
			log.Printf("Channel %d: loaded %s (%dx%d)", n, path, tex.width, tex.height)
			break
		}
	}
	return out
}

// loadTexture decodes an image file and uploads it as an RGBA8 texture,
// flipped to GL's bottom-left row order.
func loadTexture(path string) (channelTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return channelTexture{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return channelTexture{}, fmt.Errorf("decode failed: %w", err)
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	rgba = vflip(rgba)

	width := rgba.Rect.Dx()
	height := rgba.Rect.Dy()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return channelTexture{id: id, width: width, height: height}, nil
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}
