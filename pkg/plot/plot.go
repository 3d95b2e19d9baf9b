// 17 Oct 2026

// Package plot draws the census from a scan as a bar chart in a png.
// One bar per linkage category, giving the number of entries with at
// least one chain of that kind.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/chainfilter/pkg/linkage"
	"github.com/andrew-torda/chainfilter/pkg/scan"
)

const (
	width    = 640
	rowH     = 32 // height of one bar plus gap
	barH     = 22
	leftMarg = 170 // room for the labels
	rightMar = 70  // room for the counts
	topMarg  = 40  // room for the title
	fontSize = 12
)

var (
	barColor = color.RGBA{0x44, 0x77, 0xaa, 0xff}
	bgColor  = color.White
	txtColor = image.Black
)

var goFont *truetype.Font

func init() {
	var err error
	if goFont, err = freetype.ParseFont(goregular.TTF); err != nil {
		panic("parsing built in font: " + err.Error())
	}
}

// Image draws the census. Categories are in their usual order, with
// Unknown last.
func Image(r *scan.Result) (*image.RGBA, error) {
	if r == nil || r.Census == nil {
		return nil, fmt.Errorf("no census to plot")
	}
	cats := make([]linkage.Category, 0, linkage.NCategory)
	for c := linkage.Category(1); int(c) < linkage.NCategory; c++ {
		cats = append(cats, c)
	}
	cats = append(cats, linkage.Unknown)

	maxN := 1
	for _, c := range cats {
		if n := r.CensusCount(c, scan.CensusRecords); n > maxN {
			maxN = n
		}
	}
	height := topMarg + rowH*len(cats) + rowH/2
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(goFont)
	ctx.SetFontSize(fontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(txtColor)

	title := fmt.Sprintf("entries with a chain of each type (%d entries, %d errors)", r.NEntry(), r.NErr)
	if _, err := ctx.DrawString(title, freetype.Pt(10, topMarg/2+fontSize/2)); err != nil {
		return nil, err
	}
	barMax := width - leftMarg - rightMar
	for i, c := range cats {
		n := r.CensusCount(c, scan.CensusRecords)
		y0 := topMarg + i*rowH
		textY := y0 + barH/2 + fontSize/2 - 1
		if _, err := ctx.DrawString(c.String(), freetype.Pt(10, textY)); err != nil {
			return nil, err
		}
		barLen := n * barMax / maxN
		bar := image.Rect(leftMarg, y0, leftMarg+barLen, y0+barH)
		draw.Draw(img, bar, &image.Uniform{barColor}, image.Point{}, draw.Src)
		if _, err := ctx.DrawString(strconv.Itoa(n), freetype.Pt(leftMarg+barLen+6, textY)); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Census writes the census plot as png.
func Census(w io.Writer, r *scan.Result) error {
	img, err := Image(r)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
