package raster

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
)

// Sink receives every flushed frame.
type Sink interface {
	WriteFrame(img image.Image, index int) error
	Close() error
}

// PNGSequence writes one PNG per frame as Dir/Prefix_00000.png, ...
type PNGSequence struct {
	Dir    string
	Prefix string
}

func NewPNGSequence(dir, prefix string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &PNGSequence{Dir: dir, Prefix: prefix}, nil
}

// FramePath is the file a frame index is written to.
func (s *PNGSequence) FramePath(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%05d.png", s.Prefix, index))
}

func (s *PNGSequence) WriteFrame(img image.Image, index int) error {
	path := s.FramePath(index)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return f.Close()
}

func (s *PNGSequence) Close() error { return nil }

// AnimatedGIF quantizes every frame to the Plan9 palette with
// Floyd-Steinberg dithering and writes the animation on Close.
// Delay is in 100ths of a second.
type AnimatedGIF struct {
	Path  string
	Delay int
	out   gif.GIF
}

func NewAnimatedGIF(path string, delay int) (*AnimatedGIF, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	return &AnimatedGIF{Path: path, Delay: delay}, nil
}

func (g *AnimatedGIF) WriteFrame(img image.Image, _ int) error {
	pimg := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, img.Bounds().Min)
	g.out.Image = append(g.out.Image, pimg)
	g.out.Delay = append(g.out.Delay, g.Delay)
	return nil
}

// Frames is the number of frames buffered so far.
func (g *AnimatedGIF) Frames() int { return len(g.out.Image) }

func (g *AnimatedGIF) Close() error {
	if len(g.out.Image) == 0 {
		return nil
	}
	f, err := os.Create(g.Path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &g.out); err != nil {
		f.Close()
		return fmt.Errorf("encode %q: %w", g.Path, err)
	}
	return f.Close()
}
