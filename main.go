package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"k8s.io/klog/v2"

	"maxrects2d/rectpack"
)

const (
	VERSION = "0.2.0"
)

type Options struct {
	InputFile     string             // 列表文件路径
	ImageDir      string             // 图片目录
	Width         int                // 箱子宽度(图片目录输入时使用)
	Height        int                // 箱子高度(图片目录输入时使用)
	IsAllowRotate bool               // 是否允许旋转(图片目录输入时使用)
	Heuristic     rectpack.Heuristic // 放置规则
	Padding       int                // 间距
	Sort          rectpack.SortFunc  // 打包前的排序函数，nil 表示保持输入顺序
	IsSortReverse bool               // 是否反向排序
	IsOnline      bool               // 是否逐个在线插入
	IsNaturalSort bool               // 是否按文件名自然排序
	IsAutoOrient  bool               // 是否按 EXIF 方向信息旋转图片
	IsJSON        bool               // 是否以 JSON 格式输出结果
}

// parseOptions 把命令行参数解析为 Options
func parseOptions(fs *flag.FlagSet, args []string) (Options, error) {
	inputPtr := fs.String("input", "", "列表文件: 第一行 \"W H rotate\", 之后每行 \"w h\"")
	imagesPtr := fs.String("images", "", "图片目录，使用图片尺寸作为待打包尺寸")
	widthPtr := fs.Int("width", 2048, "箱子宽度(图片目录输入)")
	heightPtr := fs.Int("height", 2048, "箱子高度(图片目录输入)")
	rotationPtr := fs.Bool("rotate", false, "允许矩形旋转(图片目录输入)")
	heuristicPtr := fs.String("heuristic", "BestShortSideFit", "放置规则 (BSSF, BLSF, BAF, BL, CP, BSF)")
	paddingPtr := fs.Int("padding", 0, "间距")
	sortPtr := fs.String("sort", "area", "排序方式 (none, area, perimeter, diff, minside, maxside, ratio, width, height)")
	reversePtr := fs.Bool("reverse", false, "反向排序")
	onlinePtr := fs.Bool("online", false, "按排序结果逐个插入，而不是每一步重新评估所有尺寸")
	naturalPtr := fs.Bool("natural", true, "按文件名自然排序")
	orientPtr := fs.Bool("auto-orient", false, "按 EXIF 方向信息旋转图片")
	jsonPtr := fs.Bool("json", false, "以 JSON 格式输出结果")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	options := Options{
		InputFile:     *inputPtr,
		ImageDir:      *imagesPtr,
		Width:         *widthPtr,
		Height:        *heightPtr,
		IsAllowRotate: *rotationPtr,
		Padding:       *paddingPtr,
		IsSortReverse: *reversePtr,
		IsOnline:      *onlinePtr,
		IsNaturalSort: *naturalPtr,
		IsAutoOrient:  *orientPtr,
		IsJSON:        *jsonPtr,
	}
	if (options.InputFile == "") == (options.ImageDir == "") {
		return Options{}, errors.New("exactly one of -input or -images is required")
	}
	heuristic, err := rectpack.ParseHeuristic(*heuristicPtr)
	if err != nil {
		return Options{}, err
	}
	options.Heuristic = heuristic
	sortFunc, ok := rectpack.LookupSortFunc(*sortPtr)
	if !ok {
		return Options{}, fmt.Errorf("unknown sort %q", *sortPtr)
	}
	options.Sort = sortFunc
	return options, nil
}

// loadJob 根据 options 读取列表文件或图片目录
func loadJob(options *Options) (*Job, error) {
	if options.InputFile != "" {
		return ReadJobFile(options.InputFile)
	}
	return readImageJob(options)
}

// packing 把任务中的所有尺寸打包进一个箱子，放不下的尺寸可通过 Unpacked 获取
func packing(job *Job, options *Options) (*rectpack.Packer, error) {
	packer, err := rectpack.NewPacker(job.W, job.H, options.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("创建打包器失败: %w", err)
	}
	packer.AllowRotate(job.IsRotateEnable)
	packer.SetPadding(options.Padding)
	packer.Sorter(options.Sort, options.IsSortReverse)
	packer.Insert(job.Sizes...)
	// 在线模式下 Pack 先排序，再按顺序逐个插入
	packer.Online = options.IsOnline
	if !packer.Pack() {
		klog.V(2).Infof("%d of %d sizes do not fit the %dx%d bin", len(packer.Unpacked()), len(job.Sizes), job.W, job.H)
	}
	return packer, nil
}

// formatRect 按 "x:..,y:..,width:..,height:.." 的格式输出一个放置结果
func formatRect(rect rectpack.Rect) string {
	return fmt.Sprintf("x:%d,y:%d,width:%d,height:%d", rect.X, rect.Y, rect.Width, rect.Height)
}

// outputResult 输出打包结果
func outputResult(w io.Writer, job *Job, packer *rectpack.Packer) {
	size := packer.Bin().BinSize()
	fmt.Fprintf(w, "箱子大小: %dx%d\n", size.Width, size.Height)
	for _, rect := range packer.Rects() {
		suffix := ""
		if rect.Rotated {
			suffix = " (R)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", job.Name(rect.ID), formatRect(rect), suffix)
	}
	used := packer.Size()
	fmt.Fprintf(w, "打包区域大小: %dx%d\n", used.Width, used.Height)
	fmt.Fprintf(w, "空间利用率: %.2f%%\n", packer.Used(false)*100)
	fmt.Fprintf(w, "已打包矩形数量: %d\n", len(packer.Rects()))
	fmt.Fprintf(w, "未打包矩形数量: %d\n", len(packer.Unpacked()))
	for _, size := range packer.Unpacked() {
		fmt.Fprintf(w, "  %s %dx%d\n", job.Name(size.ID), size.Width, size.Height)
	}
}

func printElapsed(w io.Writer, t time.Duration) {
	switch {
	case t < time.Microsecond:
		fmt.Fprintf(w, "Time used: %d ns\n", t.Nanoseconds())
	case t < time.Millisecond:
		fmt.Fprintf(w, "Time used: %.2f µs\n", float64(t.Nanoseconds())/1e3)
	case t < time.Second:
		fmt.Fprintf(w, "Time used: %.2f ms\n", float64(t.Microseconds())/1e3)
	default:
		fmt.Fprintf(w, "Time used: %.2f s\n", t.Seconds())
	}
}

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	options, err := parseOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		klog.Exitf("invalid arguments: %v", err)
	}

	job, err := loadJob(&options)
	if err != nil {
		klog.Exitf("load job: %v", err)
	}
	klog.V(2).Infof("packing %d sizes into a %dx%d bin with %s", len(job.Sizes), job.W, job.H, options.Heuristic)

	start := time.Now()
	packer, err := packing(job, &options)
	if err != nil {
		klog.Exitf("pack: %v", err)
	}
	elapsed := time.Since(start)

	if options.IsJSON {
		if err := writeReport(os.Stdout, newReport(job, &options, packer)); err != nil {
			klog.Exitf("write report: %v", err)
		}
		return
	}
	outputResult(os.Stdout, job, packer)
	printElapsed(os.Stdout, elapsed)
	if len(packer.Unpacked()) > 0 {
		fmt.Println("警告: 部分尺寸无法打包到指定尺寸的箱子中")
	}
}
