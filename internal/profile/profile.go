// Package profile manages user profiles and avatar uploads.
package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/hyperjump/notegraph/internal/config"
	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// AvatarSize bounds the stored avatar in both dimensions.
const AvatarSize = 256

// AvatarURLPrefix is the URL path avatars are served under.
const AvatarURLPrefix = "/avatars/"

var (
	ErrTooLarge        = errors.New("image must be smaller than 5MB")
	ErrUnsupportedType = errors.New("only JPEG, PNG, GIF and WebP images are allowed")
	ErrInvalidImage    = errors.New("file is not a readable image")
	ErrInvalidUser     = errors.New("invalid user id")
)

// AllowedTypes lists the accepted avatar content types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var userIDRE = regexp.MustCompile(`^[A-Za-z0-9_.@-]+$`)

// Service reads and updates profiles.
type Service struct {
	store    storage.Storage
	dir      string
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
}

// NewService returns a profile service storing avatars under cfg.AvatarDir.
func NewService(store storage.Storage, cfg config.ProfileConfig, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		dir:      cfg.AvatarDir,
		maxBytes: cfg.MaxAvatarBytes,
		logger:   utils.OrNop(logger),
		now:      time.Now,
	}
}

// AvatarDir is where avatar files are written.
func (s *Service) AvatarDir() string { return s.dir }

// Get returns the profile for userID, or an empty profile if none is stored yet.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Profile{ID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// Update applies patch to the stored profile.
func (s *Service) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

// ValidateAvatar checks the declared size and content type of an upload.
func (s *Service) ValidateAvatar(size int64, contentType string) error {
	if s.maxBytes > 0 && size > s.maxBytes {
		return ErrTooLarge
	}
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, t := range AllowedTypes {
		if ct == t {
			return nil
		}
	}
	return ErrUnsupportedType
}

// UploadAvatar validates, downsizes and stores an avatar image, then points
// the profile at it. Previous avatars of the user are removed.
func (s *Service) UploadAvatar(ctx context.Context, userID string, size int64, contentType string, r io.Reader) (*models.Profile, error) {
	if !userIDRE.MatchString(userID) || userID == "." || userID == ".." {
		return nil, ErrInvalidUser
	}
	if err := s.ValidateAvatar(size, contentType); err != nil {
		return nil, err
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImage
	}
	b := img.Bounds()
	if b.Dx() > AvatarSize || b.Dy() > AvatarSize {
		img = imaging.Fit(img, AvatarSize, AvatarSize, imaging.Lanczos)
	}

	userDir := filepath.Join(s.dir, userID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory: %w", err)
	}
	old, _ := filepath.Glob(filepath.Join(userDir, "avatar-*.png"))
	name := "avatar-" + shortuuid.New() + ".png"
	if err := imaging.Save(img, filepath.Join(userDir, name)); err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}
	for _, f := range old {
		if err := os.Remove(f); err != nil {
			s.logger.Debug("failed to remove old avatar", zap.String("path", f), zap.Error(err))
		}
	}

	url := path.Join(AvatarURLPrefix, userID, name)
	return s.Update(ctx, userID, models.ProfilePatch{AvatarURL: &url})
}
