package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
	"github.com/i474232898/bikeshare-dashboard/internal/dashboard"
	"github.com/i474232898/bikeshare-dashboard/internal/render"
	"github.com/i474232898/bikeshare-dashboard/internal/rental"
)

// Controller is the part of the dashboard controller the exporter needs.
type Controller interface {
	Current() (dashboard.Dashboard, error)
	Update(ctx context.Context, start, end rental.Date) (dashboard.Dashboard, error)
}

// Bounds yields the full dataset range, used when nothing has been computed yet.
type Bounds func() (rental.Date, rental.Date, error)

// Scheduler periodically writes every chart of the current dashboard to disk.
type Scheduler struct {
	scheduler *gocron.Scheduler
	ctrl      Controller
	bounds    Bounds
	renderer  render.Renderer
	format    render.Format
	dir       string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(ctrl Controller, bounds Bounds, renderer render.Renderer, format render.Format, dir string, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		ctrl:      ctrl,
		bounds:    bounds,
		renderer:  renderer,
		format:    format,
		dir:       dir,
		interval:  interval,
	}
}

// Start schedules the export job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.dir == "" {
		log.Println("scheduler: no export directory configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running chart export job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := s.ExportOnce(ctx)
		if err != nil {
			log.Printf("scheduler: chart export failed: %v", err)
			return
		}
		log.Printf("scheduler: exported %d charts to %s", n, s.dir)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// ExportOnce renders every chart of the current dashboard into the export
// directory as <name>.<format>. If no dashboard exists yet the full dataset range
// is computed first.
func (s *Scheduler) ExportOnce(ctx context.Context) (int, error) {
	dash, err := s.ctrl.Current()
	if errors.Is(err, dashboard.ErrNoCurrent) {
		start, end, berr := s.bounds()
		if berr != nil {
			return 0, fmt.Errorf("dataset bounds: %w", berr)
		}
		dash, err = s.ctrl.Update(ctx, start, end)
	}
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	written := 0
	for _, spec := range dash.Charts {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path := filepath.Join(s.dir, spec.Name+"."+string(s.format))
		if err := s.writeChart(path, spec); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// writeChart renders into a temp file and renames it so readers never see a
// partial image.
func (s *Scheduler) writeChart(path string, spec chart.Spec) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+spec.Name+"-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := s.renderer.Render(tmp, spec); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", spec.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
