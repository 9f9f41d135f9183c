package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"youthwell/internal/util"
	"youthwell/pkg/domain"
	"youthwell/pkg/store"
)

// UploadInput carries one multipart media upload.
type UploadInput struct {
	Reader           io.Reader
	Size             int64
	OriginalName     string
	MimeType         string
	RelatedJournalID *int64
}

// UploadMedia validates, stores and records an upload. The MIME check runs
// before any bytes hit the blob store, and the blob is removed again if the
// metadata insert fails, so an upload either fully succeeds or leaves
// nothing behind.
func (a *App) UploadMedia(ctx context.Context, userID int64, in UploadInput) (domain.MediaFile, error) {
	mime := strings.ToLower(strings.TrimSpace(in.MimeType))
	if !a.allowedMime[mime] {
		return domain.MediaFile{}, ErrUnsupportedMediaType
	}
	fileType := domain.MediaVideo
	if strings.HasPrefix(mime, "audio/") {
		fileType = domain.MediaAudio
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(in.OriginalName))
	if err := a.blobs.Save(ctx, filename, in.Reader, in.Size, mime); err != nil {
		return domain.MediaFile{}, fmt.Errorf("store upload: %w", err)
	}

	media := domain.MediaFile{
		UserID:           userID,
		Filename:         filename,
		OriginalName:     in.OriginalName,
		MimeType:         mime,
		FileSize:         in.Size,
		FilePath:         filename,
		FileType:         fileType,
		RelatedJournalID: in.RelatedJournalID,
		IsPublic:         false,
	}
	if err := a.store.CreateMediaFile(&media); err != nil {
		if rmErr := a.blobs.Remove(ctx, filename); rmErr != nil {
			util.LoggerFromContext(ctx).Error("orphan blob cleanup failed", "filename", filename, "error", rmErr)
		}
		return domain.MediaFile{}, fmt.Errorf("record upload: %w", err)
	}
	return media, nil
}

// OpenMedia resolves a filename to its metadata and an open blob reader.
// Metadata rows whose blob has gone missing look like absent files.
func (a *App) OpenMedia(ctx context.Context, filename string) (domain.MediaFile, io.ReadSeekCloser, int64, error) {
	media, err := a.store.GetMediaFileByFilename(filename)
	if err != nil {
		return domain.MediaFile{}, nil, 0, err
	}
	r, size, err := a.blobs.Open(ctx, media.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.MediaFile{}, nil, 0, store.ErrNotFound
		}
		return domain.MediaFile{}, nil, 0, fmt.Errorf("open blob: %w", err)
	}
	return media, r, size, nil
}

// MediaInfo returns metadata for files the caller owns or that are public.
func (a *App) MediaInfo(userID int64, filename string) (domain.MediaFile, error) {
	media, err := a.store.GetMediaFileByFilename(filename)
	if err != nil {
		return domain.MediaFile{}, err
	}
	if media.UserID != userID && !media.IsPublic {
		return domain.MediaFile{}, ErrForbidden
	}
	return media, nil
}

func (a *App) ListMedia(userID int64) ([]domain.MediaFile, error) {
	return a.store.ListMediaByUser(userID)
}

// DeleteMedia removes the metadata row first; blob removal is best-effort so
// a missing blob cannot block the delete.
func (a *App) DeleteMedia(ctx context.Context, id, userID int64) error {
	media, err := a.store.GetMediaFile(id, userID)
	if err != nil {
		return err
	}
	if err := a.store.DeleteMediaFile(id, userID); err != nil {
		return err
	}
	if err := a.blobs.Remove(ctx, media.FilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		util.LoggerFromContext(ctx).Error("blob removal failed after delete", "filename", media.FilePath, "error", err)
	}
	return nil
}
