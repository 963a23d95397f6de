package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarSave(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	root := t.TempDir()
	svc := &AvatarService{Store: st, Root: root}

	u := seedTestUser(t, st, "avatar@example.com")
	payload := []byte("not-a-real-png-but-bytes-enough")

	t.Run("stores file and updates profile", func(t *testing.T) {
		url, err := svc.Save(ctx, u.ID, "image/png", int64(len(payload)), bytes.NewReader(payload))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "/uploads/profile-images/"+u.ID+"-"))
		require.True(t, strings.HasSuffix(url, ".png"))

		onDisk := filepath.Join(root, "profile-images", filepath.Base(url))
		data, err := os.ReadFile(onDisk)
		require.NoError(t, err)
		require.Equal(t, payload, data)

		fresh, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, url, fresh.Image)
		require.Equal(t, u.Name, fresh.Name)
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		_, err := svc.Save(ctx, u.ID, "image/svg+xml", 10, strings.NewReader("<svg/>"))
		require.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("rejects declared oversize", func(t *testing.T) {
		_, err := svc.Save(ctx, u.ID, "image/jpeg", MaxAvatarSize+1, bytes.NewReader(payload))
		require.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("rejects understated size during copy", func(t *testing.T) {
		big := bytes.NewReader(make([]byte, MaxAvatarSize+2))
		_, err := svc.Save(ctx, u.ID, "image/gif", 100, big)
		require.ErrorIs(t, err, ErrImageTooLarge)

		// The partial file must not survive.
		entries, err := os.ReadDir(filepath.Join(root, "profile-images"))
		require.NoError(t, err)
		for _, e := range entries {
			require.False(t, strings.HasSuffix(e.Name(), ".gif"))
		}
	})

	t.Run("unknown user leaves no file behind", func(t *testing.T) {
		_, err := svc.Save(ctx, "missing-user", "image/webp", 5, strings.NewReader("bytes"))
		require.Error(t, err)
	})
}
