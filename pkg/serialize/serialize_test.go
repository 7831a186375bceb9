package serialize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"simvault/pkg/report"
	"simvault/pkg/timing"
	"simvault/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSnapshot 模拟一个典型的保存对象：嵌套结构 + 切片 + map
type mapSnapshot struct {
	Name   string            `json:"name" cbor:"name"`
	Lanes  []int             `json:"lanes" cbor:"lanes"`
	Labels map[string]string `json:"labels" cbor:"labels"`
}

func sampleSnapshot() mapSnapshot {
	return mapSnapshot{
		Name:  "montlake",
		Lanes: []int{1, 2, 3, 4},
		Labels: map[string]string{
			"district": "seattle",
			"source":   "osm",
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format types.Format
	}{
		{"JSON round trip", "snap.json", types.FormatJSON},
		{"Binary round trip", "snap.bin", types.FormatBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sink report.Capture
			path := filepath.Join(t.TempDir(), tt.file)
			want := sampleSnapshot()

			require.NoError(t, Write(path, want, tt.format, &sink))
			assert.Contains(t, sink.Lines, "Wrote "+path)

			tm := timing.NewTimer("test", &sink)
			var got mapSnapshot
			require.NoError(t, Read(path, &got, tt.format, tm, &sink))
			assert.Equal(t, want, got)
		})
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	var sink report.Capture
	path := filepath.Join(t.TempDir(), "deep", "nested", "dir", "snap.json")

	require.NoError(t, Write(path, sampleSnapshot(), types.FormatJSON, &sink))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWrite_SuffixMismatch(t *testing.T) {
	var sink report.Capture
	dir := t.TempDir()

	err := Write(filepath.Join(dir, "snap.json"), sampleSnapshot(), types.FormatBinary, &sink)
	var suffixErr *SuffixError
	require.True(t, errors.As(err, &suffixErr))
	assert.Equal(t, types.FormatBinary, suffixErr.Format)

	err = Write(filepath.Join(dir, "snap.bin"), sampleSnapshot(), types.FormatJSON, &sink)
	require.True(t, errors.As(err, &suffixErr))

	// 格式错误时什么都不写
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
	assert.Empty(t, sink.Lines)
}

func TestRead_SuffixMismatch(t *testing.T) {
	var sink report.Capture
	tm := timing.NewTimer("test", &sink)

	var got mapSnapshot
	err := Read("snap.json", &got, types.FormatBinary, tm, &sink)
	var suffixErr *SuffixError
	require.True(t, errors.As(err, &suffixErr))
}

func TestRead_CorruptBinary(t *testing.T) {
	var sink report.Capture
	path := filepath.Join(t.TempDir(), "broken.bin")
	// 0x74 声明了一个 20 字节的文本串但后面什么都没有
	require.NoError(t, os.WriteFile(path, []byte("this is not cbor"), 0644))

	tm := timing.NewTimer("test", &sink)
	var got mapSnapshot
	err := Read(path, &got, types.FormatBinary, tm, &sink)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestRead_CorruptJSON(t *testing.T) {
	var sink report.Capture
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	tm := timing.NewTimer("test", &sink)
	var got mapSnapshot
	err := Read(path, &got, types.FormatJSON, tm, &sink)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestRead_BinaryRecordsTiming(t *testing.T) {
	var sink report.Capture
	path := filepath.Join(t.TempDir(), "snap.bin")
	require.NoError(t, Write(path, sampleSnapshot(), types.FormatBinary, &sink))

	tm := timing.NewTimer("test", &sink)
	var got mapSnapshot
	require.NoError(t, Read(path, &got, types.FormatBinary, tm, &sink))

	// 二进制读取走进度读取器，完成凭证兑换出一条计时记录
	require.Len(t, tm.Results(), 1)
	assert.Contains(t, tm.Results()[0].Line, "Reading "+path)
}

func TestSlurpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.dat")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0xff}, 0644))

	// 不强制后缀，任何文件都能读
	data, err := SlurpFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0xff}, data)
}

func TestDelete_Idempotent(t *testing.T) {
	var sink report.Capture
	path := filepath.Join(t.TempDir(), "snap.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	Delete(path, &sink)
	Delete(path, &sink) // 第二次：文件已经没了，照样不报错

	require.Len(t, sink.Lines, 2)
	assert.Equal(t, "Deleted "+path, sink.Lines[0])
	assert.Equal(t, path+" doesn't exist, so not deleting it", sink.Lines[1])
}
