package main

import (
	"encoding/json"
	"io"

	"maxrects2d/rectpack"
)

// Item 是一个放置结果(或未放置的尺寸)的 JSON 表示
type Item struct {
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Rotated bool   `json:"rotated"`
}

// Report 存储一次打包的结果
type Report struct {
	Meta struct {
		Version   string `json:"version"`
		Heuristic string `json:"heuristic"`
		Padding   int    `json:"padding"`
	} `json:"meta"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Occupancy float64 `json:"occupancy"`
	UsedSize  struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"usedSize"`
	Items    []Item `json:"items"`
	Unpacked []Item `json:"unpacked"`
}

func newReport(job *Job, options *Options, packer *rectpack.Packer) *Report {
	report := &Report{
		Items:    make([]Item, 0, len(packer.Rects())),
		Unpacked: make([]Item, 0, len(packer.Unpacked())),
	}
	report.Meta.Version = VERSION
	report.Meta.Heuristic = options.Heuristic.String()
	report.Meta.Padding = options.Padding

	size := packer.Bin().BinSize()
	used := packer.Size()
	report.Width = size.Width
	report.Height = size.Height
	report.Occupancy = packer.Used(false)
	report.UsedSize.W = used.Width
	report.UsedSize.H = used.Height
	for _, rect := range packer.Rects() {
		report.Items = append(report.Items, Item{
			ID:      rect.ID,
			Name:    nameOf(job, rect.ID),
			X:       rect.X,
			Y:       rect.Y,
			W:       rect.Width,
			H:       rect.Height,
			Rotated: rect.Rotated,
		})
	}
	for _, size := range packer.Unpacked() {
		report.Unpacked = append(report.Unpacked, Item{
			ID:   size.ID,
			Name: nameOf(job, size.ID),
			W:    size.Width,
			H:    size.Height,
		})
	}
	return report
}

// nameOf 只返回图片文件名，列表文件输入时为空
func nameOf(job *Job, id int) string {
	if id >= 0 && id < len(job.Names) {
		return job.Names[id]
	}
	return ""
}

// writeReport 将结果编码为缩进的 JSON
func writeReport(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
