package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
	"github.com/kartikeyan-sudo/BlogXAi/pkg/slogx"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
)

// MaxAvatarSize caps profile image uploads at 5MB.
const MaxAvatarSize = 5 << 20

const avatarURLPrefix = "/uploads/profile-images"

// avatarExtensions whitelists the accepted content types and fixes the
// on-disk extension per type, regardless of the uploaded filename.
var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarService stores profile images on disk under Root/profile-images and
// records the public URL on the user row.
type AvatarService struct {
	Store store.Store
	Root  string // uploads directory, served at /uploads/
}

// Save validates and persists an uploaded avatar, then points the user's
// image at it. Returns the public URL of the stored file.
func (s *AvatarService) Save(ctx context.Context, userID, contentType string, size int64, src io.Reader) (string, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if size > MaxAvatarSize {
		return "", ErrImageTooLarge
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.Root, "profile-images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixMilli(), ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	// The declared size is re-checked during the copy; a lying client gets
	// cut off at the cap.
	written, err := io.Copy(dst, io.LimitReader(src, MaxAvatarSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > MaxAvatarSize {
		err = ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", err
	}

	url := path.Join(avatarURLPrefix, name)
	if err := s.Store.Users().UpdateProfile(ctx, userID, user.Name, url); err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", err
	}

	slogx.FromContext(ctx).Info("profile image updated",
		slog.String("user_id", userID), slog.String("url", url))
	return url, nil
}
