// file: pkg/report/blockmap.go

// Package report renders disk reports as images.
package report

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/ha1tch/ldiskfs/pkg/diskimg"
)

// Color is an RGB triple with components in [0, 1]
type Color struct {
	R, G, B float64
}

// Options configures the block map image
type Options struct {
	Title    string  // Header text, empty for none
	Columns  int     // Cells per row
	CellSize int     // Cell edge in pixels
	Margin   int     // Border around the grid
	FontPath string  // TrueType face, empty for gg's built-in face
	FontSize float64 // Only used with FontPath
	Colors   map[diskimg.BlockKind]Color
}

// DefaultOptions returns default options for Render
func DefaultOptions() *Options {
	return &Options{
		Title:    "BLOCK MAP",
		Columns:  8,
		CellSize: 48,
		Margin:   20,
		FontSize: 12,
		Colors: map[diskimg.BlockKind]Color{
			diskimg.BlockFree:            {0.92, 0.92, 0.92},
			diskimg.BlockBitmap:          {0.4, 0, 0.4},
			diskimg.BlockDescriptorTable: {0.2, 0.4, 0.6},
			diskimg.BlockDirectory:       {0, 0.4, 0.4},
			diskimg.BlockFile:            {0.6, 1, 0.6},
			diskimg.BlockOrphan:          {1, 0.6, 0.6},
		},
	}
}

const (
	headerHeight = 30
	legendRow    = 20
)

// legendOrder fixes the legend layout
var legendOrder = []diskimg.BlockKind{
	diskimg.BlockBitmap,
	diskimg.BlockDescriptorTable,
	diskimg.BlockDirectory,
	diskimg.BlockFile,
	diskimg.BlockOrphan,
	diskimg.BlockFree,
}

// CellOrigin returns the top-left pixel of the cell drawn for block index
func CellOrigin(index int, opts *Options) (int, int) {
	col := index % opts.Columns
	row := index / opts.Columns
	return opts.Margin + col*opts.CellSize, opts.Margin + headerHeight + row*opts.CellSize
}

// Render draws one cell per block, coloured by owner, with a legend below
func Render(blocks []diskimg.BlockInfo, opts *Options) (image.Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Columns <= 0 || opts.CellSize <= 0 {
		return nil, fmt.Errorf("invalid grid: %d columns of %dpx", opts.Columns, opts.CellSize)
	}

	rows := (len(blocks) + opts.Columns - 1) / opts.Columns
	w := 2*opts.Margin + opts.Columns*opts.CellSize
	h := 2*opts.Margin + headerHeight + rows*opts.CellSize + legendRow*(len(legendOrder)+1)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if opts.FontPath != "" {
		if err := dc.LoadFontFace(opts.FontPath, opts.FontSize); err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
	}

	if opts.Title != "" {
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawRectangle(0, 0, float64(w), headerHeight)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(opts.Title, float64(w)/2, headerHeight/2, 0.5, 0.5)
	}

	cell := float64(opts.CellSize)
	for _, b := range blocks {
		x, y := CellOrigin(b.Index, opts)
		fx, fy := float64(x), float64(y)

		c := opts.Colors[b.Kind]
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(fx, fy, cell, cell)
		dc.Fill()

		dc.SetRGB(0.3, 0.3, 0.3)
		dc.SetLineWidth(1)
		dc.DrawRectangle(fx+0.5, fy+0.5, cell-1, cell-1)
		dc.Stroke()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprint(b.Index), fx+4, fy+4, 0, 1)
		if b.Name != "" {
			dc.DrawStringAnchored(b.Name, fx+cell/2, fy+cell/2, 0.5, 0.5)
		}
	}

	y := float64(opts.Margin + headerHeight + rows*opts.CellSize + legendRow/2)
	for _, kind := range legendOrder {
		c := opts.Colors[kind]
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(float64(opts.Margin), y, 14, 14)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(kind.String(), float64(opts.Margin)+22, y+7, 0, 0.5)
		y += legendRow
	}

	return dc.Image(), nil
}

// WritePNG renders the block map and encodes it to w
func WritePNG(w io.Writer, blocks []diskimg.BlockInfo, opts *Options) error {
	img, err := Render(blocks, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// SavePNG renders the block map to a PNG file
func SavePNG(path string, blocks []diskimg.BlockInfo, opts *Options) error {
	img, err := Render(blocks, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
