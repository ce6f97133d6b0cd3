package service

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"kunstcollectie/internal/domain"
)

func TestUploadPolicyCheck(t *testing.T) {
	img := pngBytes(t)
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	policy := ImagePolicy(1 << 20)

	ext, body, err := policy.Check(upload("Foto.PNG", img), "afbeelding")
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("ext = %q", ext)
	}
	got, err := io.ReadAll(body)
	if err != nil || !bytes.Equal(got, img) {
		t.Fatalf("body not preserved: %v", err)
	}

	bad := []struct {
		name string
		up   domain.Upload
	}{
		{"no file", domain.Upload{FileName: "a.png"}},
		{"extension", upload("a.bmp", img)},
		{"content mismatch", upload("a.jpg", pdf)},
		{"declared size", domain.Upload{FileName: "a.png", Size: 2 << 20, Content: bytes.NewReader(img)}},
		{"empty", upload("a.png", nil)},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := policy.Check(tc.up, "afbeelding"); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v", err)
			}
		})
	}

	if _, _, err := AttachmentPolicy(1<<20).Check(upload("rapport.pdf", pdf), "bijlage"); err != nil {
		t.Fatalf("pdf attachment: %v", err)
	}
}

func TestUploadPolicyActualSize(t *testing.T) {
	img := pngBytes(t)
	small := UploadPolicy{MaxBytes: int64(len(img) - 1), Types: ImagePolicy(0).Types}
	// 客户端少报了大小
	_, body, err := small.Check(domain.Upload{FileName: "a.png", Size: 1, Content: bytes.NewReader(img)}, "afbeelding")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadAll(body); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("read past cap: %v", err)
	}
}
