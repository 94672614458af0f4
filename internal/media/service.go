package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"microblog/internal/apperr"
	"microblog/internal/config"
	"microblog/internal/dbmysql"
	"microblog/internal/logger"
)

// errTooLarge aborts an upload once it crosses the configured limit.
var errTooLarge = errors.New("upload exceeds size limit")

// boundedReader fails the read that would push past max, so the blob
// write stops without buffering the whole upload first.
type boundedReader struct {
	r         io.Reader
	remaining int64
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > b.remaining {
		p = p[:b.remaining]
	}
	n, err := b.r.Read(p)
	b.remaining -= int64(n)
	if b.remaining <= 0 && err == nil {
		// peek one byte to distinguish exactly-at-limit from over
		var one [1]byte
		if m, _ := b.r.Read(one[:]); m > 0 {
			return n, errTooLarge
		}
		return n, io.EOF
	}
	return n, err
}

// Service owns the media lifecycle: upload, serve, delete and the
// orphan sweep.
type Service struct {
	repo  MediaRepository
	blobs BlobStore
	cfg   *config.Config
}

func NewService(repo MediaRepository, blobs BlobStore, cfg *config.Config) *Service {
	return &Service{repo: repo, blobs: blobs, cfg: cfg}
}

// sanitizeFilename strips any directory part a client may have sent.
func sanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}

// Store writes the upload to the blob backend and records the row.
// The returned row's Link is images/<ownerID>/<timestamp>_<filename>,
// unique per owner even for repeated filenames.
func (s *Service) Store(ctx context.Context, ownerID int64, filename string, r io.Reader) (*dbmysql.Media, error) {
	link := fmt.Sprintf("images/%d/%d_%s", ownerID, time.Now().UnixMicro(), sanitizeFilename(filename))

	src := r
	if max := s.cfg.Media.MaxUploadSize; max > 0 {
		src = &boundedReader{r: r, remaining: max}
	}

	if err := s.blobs.Write(ctx, link, src); err != nil {
		if errors.Is(err, errTooLarge) {
			if rmErr := s.blobs.Remove(ctx, link); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Warn("failed to remove oversized upload", "link", link, "error", rmErr)
			}
			return nil, apperr.Errorf(apperr.ETOOLARGE, "upload exceeds the %d byte limit", s.cfg.Media.MaxUploadSize)
		}
		return nil, err
	}

	media := &dbmysql.Media{Link: link}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		// the file is already on the backend; drop it rather than
		// leaving an unrecorded blob behind
		if rmErr := s.blobs.Remove(ctx, link); rmErr != nil {
			logger.Warn("orphaned blob after failed media insert", "link", link, "error", rmErr)
		}
		return nil, err
	}
	logger.Debug("media stored", "media_id", media.MediaID, "link", link)
	return media, nil
}

func (s *Service) Get(ctx context.Context, mediaID int64) (*dbmysql.Media, error) {
	media, err := s.repo.GetMedia(ctx, mediaID)
	if err != nil {
		return nil, apperr.TranslateGorm(err, "media")
	}
	return media, nil
}

// Open streams the stored bytes for a link.
func (s *Service) Open(ctx context.Context, link string) (io.ReadCloser, int64, error) {
	return s.blobs.Open(ctx, link)
}

// Delete removes the file and then the row. A file that is already
// gone is an inconsistency: fatal in debug mode, tolerated with a
// warning otherwise so the row cleanup still happens.
func (s *Service) Delete(ctx context.Context, mediaID int64) error {
	media, err := s.repo.GetMedia(ctx, mediaID)
	if err != nil {
		return apperr.TranslateGorm(err, "media")
	}

	if err := s.blobs.Remove(ctx, media.Link); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if s.cfg.Debug {
			return apperr.Errorf(apperr.EINTERNAL, "media file %q is missing", media.Link)
		}
		logger.Warn("media file already missing", "media_id", mediaID, "link", media.Link)
	}

	return s.repo.DeleteMedia(ctx, mediaID)
}

// ReconcileOrphans deletes media rows and files that no tweet has
// referenced for at least the grace period. It reports how many were
// removed.
func (s *Service) ReconcileOrphans(ctx context.Context, grace time.Duration) (int, error) {
	orphans, err := s.repo.ListOrphans(ctx, time.Now().Add(-grace))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, orphan := range orphans {
		if err := s.Delete(ctx, orphan.MediaID); err != nil {
			logger.Warn("orphan sweep failed for media", "media_id", orphan.MediaID, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("orphaned media reclaimed", "count", removed)
	}
	return removed, nil
}
