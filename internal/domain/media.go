package domain

import (
	"context"
	"io"
	"path"
	"time"

	"gorm.io/gorm"
)

type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArtworkID uint      `gorm:"not null;index" json:"kunstwerk_id"`
	FileName  string    `gorm:"size:255;not null" json:"bestandsnaam"`
	FilePath  string    `gorm:"size:512;not null" json:"bestandspad"`
	IsPrimary bool      `gorm:"not null;default:false" json:"is_hoofdafbeelding"`
	SortOrder int       `gorm:"not null;default:0" json:"volgorde"`
	CreatedAt time.Time `json:"created_at"`
}

type AttachmentKind string

const (
	AttachmentPDF  AttachmentKind = "PDF"
	AttachmentDOCX AttachmentKind = "DOCX"
)

type Attachment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ArtworkID   uint           `gorm:"not null;index" json:"kunstwerk_id"`
	FileName    string         `gorm:"size:255;not null" json:"bestandsnaam"`
	FilePath    string         `gorm:"size:512;not null" json:"bestandspad"`
	Kind        AttachmentKind `gorm:"size:16;not null" json:"bestandstype"`
	Description string         `gorm:"size:255" json:"beschrijving"`
	CreatedAt   time.Time      `json:"created_at"`
	// DownloadURL 附件需要登录才能下载
	DownloadURL string `gorm:"-" json:"download_url"`
}

// AttachmentURLPrefix 附件的下载地址前缀
const AttachmentURLPrefix = "/api/downloads/bijlagen/"

func (a *Attachment) fillURL() {
	if a.FilePath != "" {
		a.DownloadURL = AttachmentURLPrefix + path.Base(a.FilePath)
	}
}

func (a *Attachment) AfterFind(*gorm.DB) error   { a.fillURL(); return nil }
func (a *Attachment) AfterCreate(*gorm.DB) error { a.fillURL(); return nil }

// Upload 已打开的上传文件，与 HTTP 解耦
type Upload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

type MediaRepository interface {
	CountImages(ctx context.Context, artworkID uint) (int64, error)
	// AddImage 事务内复核上限；primary 时先清空再设置
	AddImage(ctx context.Context, img *Image, limit int) error
	SetPrimary(ctx context.Context, artworkID, imageID uint) error
	// DeleteImage 删除主图时把最小 volgorde 的剩余图片提升为主图
	DeleteImage(ctx context.Context, artworkID, imageID uint) (*Image, error)
	AddAttachment(ctx context.Context, a *Attachment) error
	DeleteAttachment(ctx context.Context, artworkID, attachmentID uint) (*Attachment, error)
}
