package progress

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"simvault/pkg/report"
	"simvault/pkg/timing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestFileReader_ReadsWholeFile(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	path := writeTemp(t, "a.bin", data)

	var sink report.Capture
	fr, tok, err := Open(path, &sink)
	require.NoError(t, err)
	defer fr.Close()

	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// 读到尾部的终止条件：processed == total 且本次读到 0 字节
	// 这会无视节流间隔，立刻打印完整的一行
	require.NotEmpty(t, sink.Lines)
	assert.Contains(t, sink.Lines[0], "Read "+path)

	timer := timing.NewTimer("test", &sink)
	tok.Redeem(timer)
	require.Len(t, timer.Results(), 1)
	assert.Contains(t, timer.Results()[0].Line, "Reading "+path)
}

func TestFileReader_OverrunIsFatal(t *testing.T) {
	path := writeTemp(t, "grow.bin", []byte("12345678"))

	var sink report.Capture
	fr, _, err := Open(path, &sink)
	require.NoError(t, err)
	defer fr.Close()

	// 打开之后文件被外部进程追加：实际大小超过打开时记录的总大小
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte("extra bytes"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = io.ReadAll(fr)
	require.Error(t, err)

	var overrun *OverrunError
	require.True(t, errors.As(err, &overrun))
	assert.Equal(t, path, overrun.Path)
	assert.Greater(t, overrun.Processed, overrun.Total)
}

func TestCompletionToken_RedeemOnlyOnce(t *testing.T) {
	path := writeTemp(t, "a.bin", []byte("payload"))

	var sink report.Capture
	fr, tok, err := Open(path, &sink)
	require.NoError(t, err)
	defer fr.Close()

	_, err = io.ReadAll(fr)
	require.NoError(t, err)

	timer := timing.NewTimer("test", &sink)
	tok.Redeem(timer)
	tok.Redeem(timer) // 第二次是无操作
	assert.Len(t, timer.Results(), 1)
}

func TestFileReader_EmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.bin", nil)

	var sink report.Capture
	fr, _, err := Open(path, &sink)
	require.NoError(t, err)
	defer fr.Close()

	got, err := io.ReadAll(fr)
	require.NoError(t, err)
	assert.Empty(t, got)
}
