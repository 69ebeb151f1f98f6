// Package backup copies the uploads folder (payment QR images) into dated
// snapshot folders once a day and prunes old snapshots.
package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02_15-04-05"

type Scheduler struct {
	SrcDir    string
	BackupDir string
	Retention time.Duration
	Hour      int
	Minute    int
	Logger    *zap.Logger
}

// Run backs up SrcDir daily at Hour:Minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := NextRun(time.Now(), s.Hour, s.Minute)
		s.Logger.Info("next upload backup scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := s.RunOnce(time.Now()); err != nil {
			s.Logger.Error("upload backup failed", zap.Error(err))
		}
	}
}

// RunOnce copies SrcDir into a folder named after now and prunes expired
// snapshots. It returns the new folder.
func (s *Scheduler) RunOnce(now time.Time) (string, error) {
	destDir := filepath.Join(s.BackupDir, now.Format(timestampLayout))
	if err := copyDir(s.SrcDir, destDir); err != nil {
		return "", err
	}
	s.Logger.Info("uploads backed up", zap.String("dest", destDir))

	s.cleanupOldBackups(now)
	return destDir, nil
}

// NextRun is the first hour:min strictly after now.
func NextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			err = copyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// cleanupOldBackups removes snapshot folders modified before now-Retention.
func (s *Scheduler) cleanupOldBackups(now time.Time) {
	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		s.Logger.Error("reading backup directory", zap.Error(err))
		return
	}

	cutoff := now.Add(-s.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folderPath := filepath.Join(s.BackupDir, entry.Name())
		info, err := os.Stat(folderPath)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folderPath); err != nil {
				s.Logger.Error("removing old backup", zap.String("path", folderPath), zap.Error(err))
			} else {
				s.Logger.Info("removed old backup", zap.String("path", folderPath))
			}
		}
	}
}
