package raster

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sunyuchen88/pdfapi/internal/observability"
)

// Sweeper periodically deletes output files older than the retention
// window. Eligibility is decided purely by modification time against a
// cutoff, never by name, so files being written by a concurrent request
// are never candidates on the same pass.
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	logger    *observability.Logger
}

// NewSweeper creates a sweeper for the given output directory.
func NewSweeper(dir string, retention, interval time.Duration, logger *observability.Logger) *Sweeper {
	return &Sweeper{
		dir:       dir,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info().
		Str("dir", s.dir).
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("Retention sweep started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Retention sweep stopped")
			return
		case <-ticker.C:
			removed, err := s.SweepOnce(time.Now())
			if err != nil {
				s.logger.Error().Err(err).Msg("Retention sweep failed")
				continue
			}
			s.logger.Info().Int("removed", removed).Msg("Retention sweep completed")
		}
	}
}

// SweepOnce deletes files whose modification time is older than
// now - retention and reports how many were removed. A missing directory
// is not an error.
func (s *Sweeper) SweepOnce(now time.Time) (int, error) {
	cutoff := now.Add(-s.retention)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn().Str("dir", s.dir).Msg("Sweep directory does not exist, skipping")
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Error().Err(err).Str("file", entry.Name()).Msg("Failed to remove old file")
				continue
			}
			s.logger.Info().Str("file", entry.Name()).Msg("Removed old file")
			removed++
		}
	}

	return removed, nil
}
