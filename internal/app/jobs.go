package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/internal/storage"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedSweepOrphanImages()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedSalesSummary()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSweepOrphanImages removes local image files that no product
// references anymore, left behind by image replacement or product deletion.
// Remote objects are not swept; that drift is accepted. Files younger than
// a day are skipped so an upload racing a product insert is never removed.
func (a *Application) SchedSweepOrphanImages() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	local, ok := a.fileStore.(*storage.LocalStore)
	if !ok {
		return
	}

	var refs []string
	if err := a.gormDB.Model(&domain.Product{}).
		Where("image <> ''").Pluck("image", &refs).Error; err != nil {
		zap.L().Error("orphan sweep: failed to list image refs", zap.Error(err))
		return
	}
	referenced := make(map[string]bool, len(refs))
	for _, ref := range refs {
		referenced[ref] = true
	}

	entries, err := os.ReadDir(local.Dir())
	if err != nil {
		zap.L().Error("orphan sweep: failed to read upload dir", zap.Error(err))
		return
	}

	var removed int
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < 24*time.Hour {
			continue
		}
		if err := os.Remove(filepath.Join(local.Dir(), entry.Name())); err != nil {
			zap.L().Warn("orphan sweep: remove failed", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		zap.L().Info("orphan sweep completed", zap.Int("removed", removed))
	}
}

// SchedSalesSummary logs yesterday-to-now sale totals once a day.
func (a *Application) SchedSalesSummary() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	count, total, err := a.ledgerService.DailySummary(context.Background())
	if err != nil {
		zap.L().Error("sales summary failed", zap.Error(err))
		return
	}
	zap.L().Info("daily sales summary",
		zap.Int64("sales", count),
		zap.Float64("revenue", total))
}
