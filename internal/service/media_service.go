package service

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
)

// MediaService 作品图片与附件
type MediaService struct {
	artworks    domain.ArtworkRepository
	media       domain.MediaRepository
	store       *storage.Store
	images      UploadPolicy
	attachments UploadPolicy
	log         *zap.Logger
}

func NewMediaService(
	artworks domain.ArtworkRepository,
	media domain.MediaRepository,
	store *storage.Store,
	images, attachments UploadPolicy,
	l *zap.Logger,
) *MediaService {
	return &MediaService{artworks: artworks, media: media, store: store, images: images, attachments: attachments, log: l}
}

func (s *MediaService) mustExist(ctx context.Context, artworkID uint) error {
	ok, err := s.artworks.Exists(ctx, artworkID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundf("kunstwerk")
	}
	return nil
}

// AddImage 上限 15；primary 为 true（或第一张）时成为唯一主图
func (s *MediaService) AddImage(ctx context.Context, artworkID uint, up domain.Upload, primary bool) (*domain.Image, error) {
	if err := s.mustExist(ctx, artworkID); err != nil {
		return nil, err
	}
	n, err := s.media.CountImages(ctx, artworkID)
	if err != nil {
		return nil, err
	}
	if n >= domain.MaxImagesPerArtwork {
		return nil, &domain.LimitExceededError{What: "afbeeldingen", Limit: domain.MaxImagesPerArtwork}
	}
	ext, body, err := s.images.Check(up, "afbeelding")
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Save(storage.DirImages, s.store.UniqueName("kunstwerk", ext), body)
	if err != nil {
		return nil, err
	}
	img := &domain.Image{
		ArtworkID: artworkID,
		FileName:  displayName(up.FileName),
		FilePath:  stored,
		IsPrimary: primary,
	}
	if err := s.media.AddImage(ctx, img, domain.MaxImagesPerArtwork); err != nil {
		removeFiles(s.store, s.log, stored)
		return nil, err
	}
	return img, nil
}

func (s *MediaService) SetPrimaryImage(ctx context.Context, artworkID, imageID uint) error {
	if err := s.mustExist(ctx, artworkID); err != nil {
		return err
	}
	return s.media.SetPrimary(ctx, artworkID, imageID)
}

func (s *MediaService) DeleteImage(ctx context.Context, artworkID, imageID uint) error {
	if err := s.mustExist(ctx, artworkID); err != nil {
		return err
	}
	img, err := s.media.DeleteImage(ctx, artworkID, imageID)
	if err != nil {
		return err
	}
	removeFiles(s.store, s.log, img.FilePath)
	return nil
}

func (s *MediaService) AddAttachment(ctx context.Context, artworkID uint, up domain.Upload, description string) (*domain.Attachment, error) {
	if err := s.mustExist(ctx, artworkID); err != nil {
		return nil, err
	}
	ext, body, err := s.attachments.Check(up, "bijlage")
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Save(storage.DirAttachments, s.store.UniqueName("bijlage", ext), body)
	if err != nil {
		return nil, err
	}
	att := &domain.Attachment{
		ArtworkID:   artworkID,
		FileName:    displayName(up.FileName),
		FilePath:    stored,
		Kind:        domain.AttachmentKind(strings.ToUpper(strings.TrimPrefix(ext, "."))),
		Description: strings.TrimSpace(description),
	}
	if err := s.media.AddAttachment(ctx, att); err != nil {
		removeFiles(s.store, s.log, stored)
		return nil, err
	}
	return att, nil
}

func (s *MediaService) DeleteAttachment(ctx context.Context, artworkID, attachmentID uint) error {
	if err := s.mustExist(ctx, artworkID); err != nil {
		return err
	}
	att, err := s.media.DeleteAttachment(ctx, artworkID, attachmentID)
	if err != nil {
		return err
	}
	removeFiles(s.store, s.log, att.FilePath)
	return nil
}

// displayName 原始文件名只保留最后一段
func displayName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if len(name) > 255 {
		name = name[len(name)-255:]
	}
	return name
}
