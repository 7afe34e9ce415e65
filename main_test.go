package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maxrects2d/rectpack"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseOptions(t *testing.T) {
	options, err := parseOptions(newFlagSet(), []string{
		"-input", "job.txt", "-heuristic", "cp", "-sort", "width", "-padding", "2", "-online",
	})
	require.NoError(t, err)
	assert.Equal(t, "job.txt", options.InputFile)
	assert.Equal(t, rectpack.ContactPoint, options.Heuristic)
	assert.NotNil(t, options.Sort)
	assert.Equal(t, 2, options.Padding)
	assert.True(t, options.IsOnline)
	assert.True(t, options.IsNaturalSort)

	options, err = parseOptions(newFlagSet(), []string{"-images", "dir", "-sort", "none"})
	require.NoError(t, err)
	assert.Nil(t, options.Sort)
	assert.Equal(t, rectpack.BestShortSideFit, options.Heuristic)
	assert.Equal(t, 2048, options.Width)
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"both inputs", []string{"-input", "a", "-images", "b"}},
		{"bad sort", []string{"-input", "a", "-sort", "volume"}},
		{"bad flag", []string{"-input", "a", "-width", "wide"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(newFlagSet(), tt.args)
			assert.Error(t, err)
		})
	}

	_, err := parseOptions(newFlagSet(), []string{"-input", "a", "-heuristic", "Skyline"})
	assert.ErrorIs(t, err, rectpack.ErrUnknownHeuristic)
}

func testOptions(heuristic rectpack.Heuristic) *Options {
	return &Options{Heuristic: heuristic, Sort: rectpack.SortArea}
}

func TestPacking_ReportsUnpacked(t *testing.T) {
	job := &Job{W: 10, H: 10, Sizes: []rectpack.Size{
		rectpack.NewSizeID(0, 6, 6),
		rectpack.NewSizeID(1, 20, 20),
		rectpack.NewSizeID(2, 6, 6),
	}}

	packer, err := packing(job, testOptions(rectpack.BestAreaFit))
	require.NoError(t, err)
	require.Len(t, packer.Rects(), 1)
	assert.Equal(t, 0, packer.Rects()[0].ID)
	assert.ElementsMatch(t, []rectpack.Size{
		rectpack.NewSizeID(1, 20, 20),
		rectpack.NewSizeID(2, 6, 6),
	}, packer.Unpacked())
}

func TestPacking_InvalidBin(t *testing.T) {
	_, err := packing(&Job{W: 0, H: 10}, testOptions(rectpack.BottomLeft))
	assert.Error(t, err)
}

func TestPacking_OnlineByWidth(t *testing.T) {
	job := &Job{W: 2048, H: 2048, Sizes: []rectpack.Size{
		rectpack.NewSizeID(0, 102, 102),
		rectpack.NewSizeID(1, 548, 166),
		rectpack.NewSizeID(2, 102, 102),
		rectpack.NewSizeID(3, 550, 618),
	}}
	options := &Options{Heuristic: rectpack.BestSquareFit, Sort: rectpack.SortWidth, IsOnline: true}

	packer, err := packing(job, options)
	require.NoError(t, err)
	assert.Empty(t, packer.Unpacked())

	rects := packer.Rects()
	require.Len(t, rects, 4)
	// 按宽度降序逐个插入，最宽的先放在原点
	assert.Equal(t, 3, rects[0].ID)
	assert.Equal(t, rectpack.Point{}, rects[0].Point)
	assert.Equal(t, 1, rects[1].ID)
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			assert.False(t, rects[i].Intersects(rects[j]))
		}
	}
}

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 255, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func TestReadImageJob(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "img10.png"), 3, 4)
	writeTestImage(t, filepath.Join(dir, "img2.png"), 5, 6)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))

	options := &Options{ImageDir: dir, Width: 64, Height: 32, IsAllowRotate: true, IsNaturalSort: true}
	job, err := readImageJob(options)
	require.NoError(t, err)
	assert.Equal(t, []string{"img2.png", "img10.png"}, job.Names)
	assert.Equal(t, []rectpack.Size{rectpack.NewSizeID(0, 5, 6), rectpack.NewSizeID(1, 3, 4)}, job.Sizes)
	assert.Equal(t, 64, job.W)
	assert.Equal(t, 32, job.H)
	assert.True(t, job.IsRotateEnable)
	assert.Equal(t, "img10.png", job.Name(1))

	options.IsNaturalSort = false
	job, err = readImageJob(options)
	require.NoError(t, err)
	assert.Equal(t, []string{"img10.png", "img2.png"}, job.Names)
}

func TestReadImageJob_Errors(t *testing.T) {
	_, err := readImageJob(&Options{ImageDir: t.TempDir()})
	assert.Error(t, err, "empty directory")

	_, err = readImageJob(&Options{ImageDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644))
	_, err = readImageJob(&Options{ImageDir: dir})
	assert.Error(t, err)
}

func TestParallel_VisitsEveryIndex(t *testing.T) {
	const n = 1000
	seen := make([]int, n)
	Parallel(0, n, func(i int) { seen[i]++ })
	for i, count := range seen {
		require.Equalf(t, 1, count, "index %d", i)
	}
}

func TestWriteReport(t *testing.T) {
	job := &Job{W: 10, H: 10, Names: []string{"a.png", "b.png", "c.png"}, Sizes: []rectpack.Size{
		rectpack.NewSizeID(0, 10, 5),
		rectpack.NewSizeID(1, 10, 5),
		rectpack.NewSizeID(2, 11, 1),
	}}
	options := testOptions(rectpack.BestShortSideFit)
	packer, err := packing(job, options)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, newReport(job, options, packer)))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, VERSION, got.Meta.Version)
	assert.Equal(t, "BestShortSideFit", got.Meta.Heuristic)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 1.0, got.Occupancy)
	assert.Equal(t, 10, got.UsedSize.W)
	assert.Equal(t, []Item{
		{ID: 0, Name: "a.png", X: 0, Y: 0, W: 10, H: 5},
		{ID: 1, Name: "b.png", X: 0, Y: 5, W: 10, H: 5},
	}, got.Items)
	assert.Equal(t, []Item{{ID: 2, Name: "c.png", W: 11, H: 1}}, got.Unpacked)
}
