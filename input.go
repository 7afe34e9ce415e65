package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"maxrects2d/rectpack"
)

// Job 描述一次打包任务：箱子尺寸、是否允许旋转以及待打包的尺寸列表
type Job struct {
	// The width of the boundary
	W int
	// The height of the boundary
	H int
	// 待打包的尺寸，ID 为输入中的序号
	Sizes []rectpack.Size
	// 每个尺寸对应的名称(图片文件名)，列表文件输入时为空
	Names []string
	// Whether to allow rectangle rotation
	IsRotateEnable bool
}

// Name 返回 ID 对应的名称，没有名称时返回序号
func (j *Job) Name(id int) string {
	if id >= 0 && id < len(j.Names) {
		return j.Names[id]
	}
	return strconv.Itoa(id)
}

// ReadJobFile Read data from a file and creates a Job instance
func ReadJobFile(path string) (*Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	job, err := ReadJob(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// ReadJob 读取列表格式的任务：
// 第一行为 "W H rotate"(rotate 为 1 表示允许旋转)，之后每行一个 "w h"。
// 空行和以 # 开头的行会被忽略。
func ReadJob(r io.Reader) (*Job, error) {
	scanner := bufio.NewScanner(r)
	job := &Job{}
	isFirstLine := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		if isFirstLine {
			if len(parts) < 2 {
				return nil, fmt.Errorf("line %d: expected \"W H [rotate]\", got %q", lineNo, line)
			}
			w, h, err := parsePair(parts)
			if err != nil {
				return nil, fmt.Errorf("line %d: an error in parsing bin size: %w", lineNo, err)
			}
			job.W = w
			job.H = h
			job.IsRotateEnable = len(parts) > 2 && parts[2] == "1"
			isFirstLine = false
			continue
		}

		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: expected \"w h\", got %q", lineNo, line)
		}
		w, h, err := parsePair(parts)
		if err != nil {
			return nil, fmt.Errorf("line %d: an error in parsing rectangle size: %w", lineNo, err)
		}
		job.Sizes = append(job.Sizes, rectpack.NewSizeID(len(job.Sizes), w, h))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if isFirstLine {
		return nil, fmt.Errorf("empty job: missing bin size line")
	}
	return job, nil
}

func parsePair(parts []string) (int, int, error) {
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	return w, h, nil
}
