package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
)

var (
	// ErrNotFound 表示所有候选路径都不存在。
	ErrNotFound = errors.New("data file not found")
	// ErrNoDecoding 表示所有候选编码都无法正确解码文件。
	ErrNoDecoding = errors.New("no encoding could decode data")
)

// DefaultEncodings 是 CSV 的默认候选编码顺序。
var DefaultEncodings = []string{"utf-8", "cp949", "euc-kr", "latin1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source 记录表格的实际来源。
type Source struct {
	Path     string `json:"path" yaml:"path"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Format   string `json:"format" yaml:"format"`
}

// LoadOptions 控制 Load 的路径与编码回退行为。
type LoadOptions struct {
	// Candidates 按顺序尝试的文件路径，第一个存在的文件被使用。
	Candidates []string
	// Encodings 是 CSV 的候选编码，为空时使用 DefaultEncodings。
	Encodings []string
	// Sheet 是 XLSX 的工作表名称，为空时使用第一个工作表。
	Sheet string
}

// ResolvePath 返回候选列表中第一个存在的普通文件。
// 支持 ~ 开头的路径。
func ResolvePath(candidates []string) (string, error) {
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		p, err := expandHome(c)
		if err != nil {
			return "", err
		}
		tried = append(tried, p)

		st, err := os.Stat(p)
		if err != nil || !st.Mode().IsRegular() {
			slog.Debug("candidate path skipped", "path", p)
			continue
		}
		return p, nil
	}
	if len(tried) == 0 {
		return "", fmt.Errorf("%w: no candidate paths", ErrNotFound)
	}
	return "", fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(tried, ", "))
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

// Load 按候选路径找到文件并读取为 Table。
// .xlsx/.xlsm 使用 excelize 读取，其余文件按 CSV 处理。
func Load(opts LoadOptions) (*Table, Source, error) {
	path, err := ResolvePath(opts.Candidates)
	if err != nil {
		return nil, Source{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err := loadXLSX(path, opts.Sheet)
		if err != nil {
			return nil, Source{}, err
		}
		return t, Source{Path: path, Format: "xlsx"}, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, Source{}, err
		}
		defer f.Close()

		t, enc, err := ReadCSV(f, opts.Encodings)
		if err != nil {
			return nil, Source{}, fmt.Errorf("read %s: %w", path, err)
		}
		return t, Source{Path: path, Encoding: enc, Format: "csv"}, nil
	}
}

// ReadCSV 读取 CSV 数据，按候选编码依次尝试解码，返回使用的编码名称。
func ReadCSV(r io.Reader, encodings []string) (*Table, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	text, used, err := Decode(data, encodings)
	if err != nil {
		return nil, "", err
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("parse csv (%s): %w", used, err)
	}
	return newTable(records), used, nil
}

// Decode 按顺序尝试候选编码，返回第一个能干净解码的结果及其编码名称。
// utf-8 要求输入是合法 UTF-8；其他编码在解码结果出现替换字符时视为失败。
// 带 UTF-8 BOM 的数据直接按 utf-8 处理。
func Decode(data []byte, encodings []string) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), "utf-8", nil
	}
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	for _, name := range encodings {
		name = strings.ToLower(strings.TrimSpace(name))
		if isUTF8Name(name) {
			if utf8.Valid(data) {
				return string(data), "utf-8", nil
			}
			slog.Debug("decode failed", "encoding", name)
			continue
		}

		enc, err := lookupEncoding(name)
		if err != nil {
			return "", "", err
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			slog.Debug("decode failed", "encoding", name)
			continue
		}
		return string(out), name, nil
	}
	return "", "", fmt.Errorf("%w (tried %s)", ErrNoDecoding, strings.Join(encodings, ", "))
}

func isUTF8Name(name string) bool {
	return name == "utf-8" || name == "utf8"
}

// lookupEncoding 把编码名称映射到 x/text 编码。
// cp949 与 euc-kr 都使用 korean.EUCKR（它本身就是 CP949 的超集实现）。
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "cp949", "ms949", "uhc", "euc-kr", "euckr":
		return korean.EUCKR, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// ValidateEncodings 检查编码名称列表是否都能识别。
func ValidateEncodings(encodings []string) error {
	for _, name := range encodings {
		name = strings.ToLower(strings.TrimSpace(name))
		if isUTF8Name(name) {
			continue
		}
		if _, err := lookupEncoding(name); err != nil {
			return err
		}
	}
	return nil
}

func loadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.TrimSpace(sheet) == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return newTable(rows), nil
}
