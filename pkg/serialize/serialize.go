// pkg/serialize/serialize.go
package serialize

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"simvault/pkg/progress"
	"simvault/pkg/report"
	"simvault/pkg/timing"
	"simvault/pkg/types"

	"github.com/fxamacker/cbor/v2"
)

// 二进制格式的编码选项
// 强制 Map Key 排序 + 禁止不定长编码，保证同一个对象写出来的字节稳定，
// 方便外部做内容比对和缓存
var encOptions = cbor.EncOptions{
	Sort:        cbor.SortCanonical,
	Time:        cbor.TimeUnix,
	TimeTag:     cbor.EncTagNone,
	IndefLength: cbor.IndefLengthForbidden,
}

var em, _ = encOptions.EncMode()

// 解码选项
// 限制嵌套深度防止恶意构造的文件打爆栈；容器元素数量不设上限，
// 仿真快照里的形状集合可以非常大
// 解到 any 时 Map 落成 map[string]any，这样解出来的值可以直接再走 JSON 编码
var decOptions = cbor.DecOptions{
	MaxNestedLevels: 100,
	IndefLength:     cbor.IndefLengthForbidden,
	DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
}

var dm, _ = decOptions.DecMode()

// SuffixError: path 的后缀和请求的格式对不上
// 这是调用方的编程错误 (ConfigurationError)，不是坏数据；
// 库只负责返回，工具边界 (cmd/sv) 收到后直接退出进程
type SuffixError struct {
	Path   string
	Format types.Format
}

func (e *SuffixError) Error() string {
	return fmt.Sprintf("%s needs to end with %s", e.Path, e.Format.Suffix())
}

// DecodeError: payload 内容损坏或者根本不是这个格式
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Write 把 v 按指定格式写到 path
// path 后缀必须和 format 匹配，不做任何静默的格式猜测
// 缺失的父目录会被补齐；成功后在 sink 上打一行确认
func Write(path string, v any, format types.Format, sink report.Sink) error {
	if !strings.HasSuffix(path, format.Suffix()) {
		return &SuffixError{Path: path, Format: format}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent dir for %s: %w", path, err)
	}

	switch format {
	case types.FormatJSON:
		// 文本格式：整体编码后一次写入，缩进输出方便人工检查
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	case types.FormatBinary:
		// 二进制格式：流式编码，大快照不用先在内存里攒一份完整字节
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		w := bufio.NewWriter(f)
		if err := em.NewEncoder(w).Encode(v); err != nil {
			f.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	sink.Line("Wrote " + path)
	return nil
}

// Read 把 path 按指定格式解码到 v (必须是指针)
// 后缀和 format 不匹配返回 *SuffixError
// 二进制格式经过进度读取器流式解码，大小和耗时都会记入 tm；
// 文本格式的 payload 通常很小，直接整体读进内存解码
// 解码失败和 I/O 失败都以 error 返回，批量调用方自己决定是否降级
func Read(path string, v any, format types.Format, tm *timing.Timer, sink report.Sink) error {
	if !strings.HasSuffix(path, format.Suffix()) {
		return &SuffixError{Path: path, Format: format}
	}

	switch format {
	case types.FormatJSON:
		data, err := SlurpFile(path)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, v); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
	case types.FormatBinary:
		fr, tok, err := progress.Open(path, sink)
		if err != nil {
			return err
		}
		defer fr.Close()

		if err := dm.NewDecoder(fr).Decode(v); err != nil {
			// 超读必须原样上抛：它是文件系统层面的不一致，不是坏 payload
			var overrun *progress.OverrunError
			if errors.As(err, &overrun) {
				return overrun
			}
			return &DecodeError{Path: path, Err: err}
		}
		tok.Redeem(tm)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return nil
}

// SlurpFile 原样读出全部字节，不关心格式，也不强制后缀
func SlurpFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Delete 幂等删除
// 文件不存在不算错误，两种结果都会在 sink 上说清楚，谁也不会抛出来
func Delete(path string, sink report.Sink) {
	if err := os.Remove(path); err == nil {
		sink.Line("Deleted " + path)
	} else {
		sink.Line(path + " doesn't exist, so not deleting it")
	}
}
