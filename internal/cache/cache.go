// Package cache 记录每个数据文件上一次成功解码所用的编码。
// 缓存文件存储在 <配置目录>/cache/ 下，以文件名 + 键哈希命名；
// 文件大小或修改时间变化都会产生新的键，旧缓存自然失效。
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rankviz/internal/config"
)

// Key 唯一标识某个版本的数据文件。
type Key struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Entry 是持久化到磁盘的缓存条目。
type Entry struct {
	Key       Key       `json:"key"`
	Encoding  string    `json:"encoding"`
	CreatedAt time.Time `json:"created_at"`
}

// KeyFor 根据文件的当前状态构造缓存键。
func KeyFor(path string) (Key, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Key{}, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return Key{}, err
	}
	return Key{Path: filepath.Clean(abs), Size: st.Size(), ModTime: st.ModTime().UTC()}, nil
}

// String 返回稳定的缓存文件名，格式为 "{文件名}_{hash}.json"。
func (k Key) String() string {
	name := sanitizeFileComponent(filepath.Base(k.Path))
	if name == "" {
		name = "data"
	}

	payload := strings.Join([]string{
		filepath.Clean(strings.TrimSpace(k.Path)),
		fmt.Sprintf("%d", k.Size),
		k.ModTime.UTC().Format(time.RFC3339Nano),
	}, "\n")
	digest := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("%s_%x.json", name, digest[:8])
}

// Load 读取缓存条目，未命中时返回 os.ErrNotExist。
func Load(key Key) (*Entry, error) {
	p, err := path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save 写入缓存条目：每次写入独立的临时文件再 rename，并发保存同一个键也不会互相覆盖临时文件。
func Save(key Key, encoding string) error {
	p, err := path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Entry{
		Key:       key,
		Encoding:  encoding,
		CreatedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// PreferEncoding 把 preferred 放到候选编码列表最前面（去重），preferred 为空时原样返回。
func PreferEncoding(encodings []string, preferred string) []string {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" {
		return encodings
	}
	out := make([]string, 0, len(encodings)+1)
	out = append(out, preferred)
	for _, e := range encodings {
		if !strings.EqualFold(strings.TrimSpace(e), preferred) {
			out = append(out, e)
		}
	}
	return out
}

func path(key Key) (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache", key.String()), nil
}

// sanitizeFileComponent 把路径分隔符、空格、冒号替换为下划线。
func sanitizeFileComponent(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.NewReplacer(string(filepath.Separator), "_", " ", "_", ":", "_").Replace(name)
}
