package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
)

func TestWriteExport(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := store.Users.Create(ctx, &models.User{ID: "u1", Email: "a@example.com"}); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := writeExport(ctx, adminService(&config.Config{JWTSecret: "x"}, store), dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "wellness-data-") {
		t.Errorf("path = %q", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("export file missing or empty: %v", err)
	}
}

func TestFormatStats(t *testing.T) {
	out := formatStats(&dto.PlatformStats{TotalUsers: 3, ActiveUsers: 2, AverageMood: "N/A"})
	if !strings.Contains(out, "Users:             3") || !strings.Contains(out, "Average mood:      N/A") {
		t.Errorf("formatStats =\n%s", out)
	}
}
