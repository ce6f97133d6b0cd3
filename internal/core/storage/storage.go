// Package storage keeps uploaded media and generated files under one root
// directory. Paths stored in the database are slash separated and include the
// root, e.g. "uploads/kunstwerken/kunstwerk-1700000000000-a1b2c3.jpg".
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"kunstcollectie/internal/domain"
)

// 子目录
const (
	DirImages      = "kunstwerken"
	DirAttachments = "bijlagen"
	DirPortraits   = "kunstenaars"
	DirReports     = "rapportages"
	DirBackups     = "backups"
)

var ErrInvalidName = fmt.Errorf("%w: invalid file name", domain.ErrValidation)

type Store struct {
	fs   afero.Fs
	root string
	now  func() time.Time
}

func New(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: path.Clean(filepath.ToSlash(root)), now: time.Now}
}

// NewOS 基于本地磁盘
func NewOS(root string) *Store { return New(afero.NewOsFs(), root) }

func (s *Store) Root() string { return s.root }

// UniqueName <prefix>-<unix-ms>-<rand><ext>
func (s *Store) UniqueName(prefix, ext string) string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s-%d-%s%s", prefix, s.now().UnixMilli(), hex.EncodeToString(b[:]), strings.ToLower(ext))
}

// Save 写入 dir/name，返回带 root 的存储路径
func (s *Store) Save(dir, name string, r io.Reader) (string, error) {
	w, stored, err := s.Create(dir, name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		_ = s.fs.Remove(stored)
		return "", err
	}
	if err := w.Close(); err != nil {
		_ = s.fs.Remove(stored)
		return "", err
	}
	return stored, nil
}

// Create 打开一个新文件供写入（导出/备份渲染直接写流）；同名文件已存在时报错，不覆盖
func (s *Store) Create(dir, name string) (afero.File, string, error) {
	if err := CheckName(name); err != nil {
		return nil, "", err
	}
	full := path.Join(s.root, dir)
	if err := s.fs.MkdirAll(full, 0o755); err != nil {
		return nil, "", err
	}
	stored := path.Join(full, name)
	f, err := s.fs.OpenFile(stored, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, "", err
	}
	return f, stored, nil
}

// Open 按目录 + 文件名读取；文件名做路径穿越校验
func (s *Store) Open(dir, name string) (afero.File, os.FileInfo, error) {
	if err := CheckName(name); err != nil {
		return nil, nil, err
	}
	p := path.Join(s.root, dir, name)
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, domain.NotFoundf("bestand")
		}
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, domain.NotFoundf("bestand")
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, nil, err
	}
	return f, info, nil
}

// Remove 删除存储路径；不存在视为成功
func (s *Store) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	p := path.Clean(filepath.ToSlash(stored))
	if p != s.root && !strings.HasPrefix(p, s.root+"/") {
		return fmt.Errorf("%w: %s outside storage root", ErrInvalidName, stored)
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Exists(stored string) bool {
	ok, err := afero.Exists(s.fs, path.Clean(filepath.ToSlash(stored)))
	return err == nil && ok
}

// CheckName 只允许单段文件名
func CheckName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}
