package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/ballpit/internal/physics"
)

const (
	charW, charH = 8, 16
	gifFile      = "ballpit.gif"
)

// Recorder collects canvas frames for a GIF.
type Recorder struct {
	frames  []*image.Paletted
	delay   int
	palette color.Palette
}

// NewRecorder builds a recorder whose frame delay matches fps.
func NewRecorder(fps int) *Recorder {
	delay := 2
	if fps > 0 && 100/fps > delay {
		delay = 100 / fps
	}
	return &Recorder{delay: delay, palette: ballPalette()}
}

// ballPalette holds black, white and every color a ball can be painted with.
func ballPalette() color.Palette {
	p := color.Palette{color.RGBA{A: 255}, color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	seen := map[physics.Color]bool{}
	add := func(c physics.Color) {
		if seen[c] || len(p) >= 256 {
			return
		}
		seen[c] = true
		p = append(p, c.RGBA())
	}
	for _, c := range physics.Palette {
		add(c)
		add(c.Darken(0.3))
	}
	for _, a := range physics.Archetypes() {
		prof, _ := a.Profile()
		if prof.UsesPalette {
			continue
		}
		for _, s := range physics.Gradient(a, prof.Color) {
			add(s.Color)
		}
	}
	for _, c := range []physics.Color{"#ff5500", "#ff8000", "#ffaa00", "#ffd500"} {
		add(c)
	}
	return p
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture rasterizes the canvas, one charW x charH block per cell.
func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), r.palette)
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.Grid[row][col] - blank
			if pattern <= 0 {
				continue
			}
			idx := uint8(1)
			if hex := c.Colors[row][col]; hex != "" {
				idx = uint8(r.palette.Index(physics.Color(hex).RGBA()))
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&rune(pixelMap[dy][dx]) == 0 {
						continue
					}
					x0, y0 := col*charW+dx*dotW, row*charH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, idx)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Encode writes every captured frame as a looping GIF.
func (r *Recorder) Encode(out io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(out, &anim)
}

// Save encodes to path and drops the captured frames.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.Encode(f); err != nil {
		return err
	}
	r.frames = nil
	return nil
}
