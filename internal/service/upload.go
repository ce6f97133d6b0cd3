package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"kunstcollectie/internal/domain"
)

// UploadPolicy 上传校验：扩展名、大小、嗅探出的 MIME
type UploadPolicy struct {
	MaxBytes int64
	// Types 扩展名 -> 允许的 MIME
	Types map[string][]string
}

func ImagePolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{MaxBytes: maxBytes, Types: map[string][]string{
		".jpg":  {"image/jpeg"},
		".jpeg": {"image/jpeg"},
		".png":  {"image/png"},
		".gif":  {"image/gif"},
		".webp": {"image/webp"},
	}}
}

func AttachmentPolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{MaxBytes: maxBytes, Types: map[string][]string{
		".pdf": {"application/pdf"},
		// 精简的 docx 只能被识别为 zip
		".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	}}
}

func SpreadsheetPolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{MaxBytes: maxBytes, Types: map[string][]string{
		".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/zip"},
	}}
}

const sniffLen = 3072

// Check 返回小写扩展名和可继续读取的完整内容
func (p UploadPolicy) Check(u domain.Upload, field string) (string, io.Reader, error) {
	if u.Content == nil {
		return "", nil, domain.Invalid("no file uploaded", field)
	}
	ext := strings.ToLower(filepath.Ext(u.FileName))
	allowed, ok := p.Types[ext]
	if !ok {
		return "", nil, domain.Invalid(fmt.Sprintf("file type %q not allowed", ext), field)
	}
	if p.MaxBytes > 0 && u.Size > p.MaxBytes {
		return "", nil, domain.Invalid(fmt.Sprintf("file exceeds %d MB", p.MaxBytes>>20), field)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(u.Content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]
	if n == 0 {
		return "", nil, domain.Invalid("empty file", field)
	}
	mt := mimetype.Detect(head)
	if !mimeAllowed(mt, allowed) {
		return "", nil, domain.Invalid(fmt.Sprintf("content %s does not match %s", mt.String(), ext), field)
	}

	body := io.MultiReader(bytes.NewReader(head), u.Content)
	if p.MaxBytes > 0 {
		body = &capReader{r: body, left: p.MaxBytes, field: field}
	}
	return ext, body, nil
}

func mimeAllowed(mt *mimetype.MIME, allowed []string) bool {
	for m := mt; m != nil; m = m.Parent() {
		for _, a := range allowed {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

// capReader 实际字节数超过上限时报校验错误（Size 由客户端声明，不可信）
type capReader struct {
	r     io.Reader
	left  int64
	field string
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.left < 0 {
		return 0, domain.Invalid("file too large", c.field)
	}
	if int64(len(p)) > c.left+1 {
		p = p[:c.left+1]
	}
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, domain.Invalid("file too large", c.field)
	}
	return n, err
}
