// pkg/store/store.go
package store

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"simvault/pkg/progress"
	"simvault/pkg/report"
	"simvault/pkg/serialize"
	"simvault/pkg/timing"
	"simvault/pkg/types"
)

// UnknownSuffixError: 目录里出现了两种已知后缀之外的文件
// 存储目录默认是人工维护的，混进别的东西说明配置出了问题，
// 这是致命错误而不是可跳过的坏数据
type UnknownSuffixError struct {
	Path string
}

func (e *UnknownSuffixError) Error() string {
	return fmt.Sprintf("don't know what %s is", e.Path)
}

// Entry 是批量加载结果里的一条：对象的 Key 和解码出的值
type Entry[T any] struct {
	Key   types.Key
	Value T
}

// Skipped 记录一个加载失败被跳过的文件
// 批量加载不因为单个坏文件整体失败，但坏文件必须让调用方看得见，
// 由它决定这次部分加载能不能接受
type Skipped struct {
	Path string
	Err  error
}

// ListKeys 枚举目录下的对象 Key：隐藏文件和 .storeignore 命中的条目不算，
// 去掉扩展名，用 set 去重，按字典序返回
// 目录不存在返回空序列——“还没保存过任何东西”是这个工具的正常状态
// 其他枚举失败（权限、不是目录）原样返回错误
func ListKeys(dir string) ([]types.Key, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dir %s: %w", dir, err)
	}

	matcher := loadIgnore(dir)
	set := make(map[types.Key]struct{})
	for _, ent := range entries {
		name := ent.Name()
		if strings.HasPrefix(name, ".") || matcher.Matches(name) {
			continue
		}
		set[types.StemOf(name)] = struct{}{}
	}

	keys := make([]types.Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// LoadAll 把整个目录当成一个键值集合一次性加载
// 每个文件按后缀推断格式解码；单个文件坏了记日志、进 skipped，继续下一个
// 返回的 entries 按 Key 字典序排列；目录不存在返回空集合
//
// 同一个 stem 同时存在 .json 和 .bin 时，枚举顺序靠后的覆盖前面的；
// 枚举顺序由文件系统决定，哪个赢是未定义行为
func LoadAll[T any](dir string, tm *timing.Timer, sink report.Sink) ([]Entry[T], []Skipped, error) {
	dirEntries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading dir %s: %w", dir, err)
	}

	matcher := loadIgnore(dir)
	loaded := make(map[types.Key]T)
	var skipped []Skipped

	tm.StartIter("loading objects from "+dir, len(dirEntries))
	for _, ent := range dirEntries {
		tm.NextIter()
		name := ent.Name()
		if strings.HasPrefix(name, ".") || matcher.Matches(name) {
			continue
		}

		full := filepath.Join(dir, name)
		format, ok := types.FormatForPath(name)
		if !ok {
			return nil, nil, &UnknownSuffixError{Path: full}
		}

		var v T
		if err := serialize.Read(full, &v, format, tm, sink); err != nil {
			// 超读说明文件系统在读取期间不一致，整个加载不可信，直接中止
			var overrun *progress.OverrunError
			if errors.As(err, &overrun) {
				return nil, nil, err
			}
			slog.Warn("couldn't load object, skipping it", "path", full, "err", err)
			skipped = append(skipped, Skipped{Path: full, Err: err})
			continue
		}
		loaded[types.StemOf(name)] = v
	}

	out := make([]Entry[T], 0, len(loaded))
	for k, v := range loaded {
		out = append(out, Entry[T]{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Entry[T]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out, skipped, nil
}
