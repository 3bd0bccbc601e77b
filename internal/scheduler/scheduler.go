// Package scheduler runs periodic snapshot backups of the data files.
package scheduler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron      *cron.Cron
	logger    *zap.Logger
	backupDir string
	sources   []string
}

// New builds a scheduler copying sources into backupDir on each run.
func New(logger *zap.Logger, backupDir string, sources ...string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		logger:    logger,
		backupDir: backupDir,
		sources:   sources,
	}
}

// Start registers the backup job on the given cron spec and starts the
// scheduler. An empty backup directory disables backups entirely.
func (s *Scheduler) Start(spec string) error {
	if s.backupDir == "" {
		s.logger.Info("backup dir not set, snapshot backups disabled")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.Snapshot(); err != nil {
			s.logger.Error("snapshot backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	s.cron.Start()
	s.logger.Info("backup scheduler started", zap.String("spec", spec), zap.String("dir", s.backupDir))
	return nil
}

// Snapshot copies every source file into a timestamped subdirectory.
// Sources that do not exist yet are skipped.
func (s *Scheduler) Snapshot() error {
	dir := filepath.Join(s.backupDir, time.Now().UTC().Format("20060102T150405Z"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure backup dir: %w", err)
	}
	for _, src := range s.sources {
		if err := copyFile(src, filepath.Join(dir, filepath.Base(src))); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("backup %s: %w", src, err)
		}
	}
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("backup scheduler stopped")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
