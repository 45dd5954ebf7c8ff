package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipespace/backend/internal/service"
)

func newUploadService(t *testing.T) (*service.UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := service.NewLocalStorage(dir)
	require.NoError(t, err)
	return service.NewUploadService(storage, nil), dir
}

func TestUploadSave(t *testing.T) {
	svc, dir := newUploadService(t)

	body := "fake image bytes"
	ref, err := svc.Save(context.Background(), "avatar.png", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestUploadRejectsExtension(t *testing.T) {
	svc, _ := newUploadService(t)

	_, err := svc.Save(context.Background(), "payload.exe", 10, strings.NewReader("xxxxxxxxxx"))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Save(context.Background(), "noext", 10, strings.NewReader("xxxxxxxxxx"))
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUploadRejectsBadSize(t *testing.T) {
	svc, _ := newUploadService(t)

	_, err := svc.Save(context.Background(), "a.jpg", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Save(context.Background(), "a.jpg", service.MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUploadFailedReadLeavesNoFile(t *testing.T) {
	svc, dir := newUploadService(t)

	boom := errors.New("connection reset")
	_, err := svc.Save(context.Background(), "a.jpg", 100, iotest.ErrReader(boom))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed upload must not leave files behind")
}
