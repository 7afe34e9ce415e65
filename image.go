package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"k8s.io/klog/v2"

	"maxrects2d/rectpack"
)

// imageExts 是按扩展名识别的图片格式(imaging 支持的解码格式)
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Parallel 把 [start, end) 的下标分批交给多个 goroutine 执行
func Parallel(start, end int, fn func(i int)) {
	numGoroutines := runtime.NumCPU()
	if end-start < numGoroutines {
		// 如果任务数量少于CPU核心数，直接顺序执行
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	batchSize := (end - start) / numGoroutines
	if batchSize < 1 {
		batchSize = 1
	}
	for i := start; i < end; i += batchSize {
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for j := from; j < to && j < end; j++ {
				fn(j)
			}
		}(i, i+batchSize)
	}
	wg.Wait()
}

// listImageFiles 列出目录中的图片文件，isNaturalSort 为 true 时按自然顺序排序
// (例如 img2.png 排在 img10.png 前面)，否则按字典序
func listImageFiles(dir string, isNaturalSort bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if isNaturalSort {
		sort.Sort(natural.StringSlice(paths))
	} else {
		sort.Strings(paths)
	}
	return paths, nil
}

// readImageSizes 并行解码图片并返回它们的尺寸，尺寸的 ID 为图片在 paths 中的下标
func readImageSizes(paths []string, autoOrient bool) ([]rectpack.Size, error) {
	sizes := make([]rectpack.Size, len(paths))
	errs := make([]error, len(paths))
	Parallel(0, len(paths), func(i int) {
		img, err := imaging.Open(paths[i], imaging.AutoOrientation(autoOrient))
		if err != nil {
			errs[i] = fmt.Errorf("无法解码图片 %s: %w", paths[i], err)
			return
		}
		bounds := img.Bounds()
		sizes[i] = rectpack.NewSizeID(i, bounds.Dx(), bounds.Dy())
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sizes, nil
}

// readImageJob 读取目录中的所有图片文件，生成使用 options 中箱子尺寸的任务
func readImageJob(options *Options) (*Job, error) {
	paths, err := listImageFiles(options.ImageDir, options.IsNaturalSort)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("输入目录 %s 中没有找到任何图片文件", options.ImageDir)
	}
	klog.V(2).Infof("found %d image files in %s", len(paths), options.ImageDir)

	sizes, err := readImageSizes(paths, options.IsAutoOrient)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	return &Job{
		W:              options.Width,
		H:              options.Height,
		Sizes:          sizes,
		Names:          names,
		IsRotateEnable: options.IsAllowRotate,
	}, nil
}
