// Package jobs runs the periodic background work: open-data sync and
// view-counter flushes.
package jobs

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/nowopenyyc/nowopen/app/repository"
	"github.com/nowopenyyc/nowopen/internal/pkg/env"
	"github.com/nowopenyyc/nowopen/internal/pkg/ingest"
	"github.com/nowopenyyc/nowopen/internal/pkg/metrics/counter"
	"github.com/nowopenyyc/nowopen/internal/pkg/opendata"
)

// Manager owns the background tickers for sync and counter flushing.
type Manager struct {
	syncTicker         *time.Ticker
	counterFlushTicker *time.Ticker
	stopCh             chan struct{}
	wg                 sync.WaitGroup
	mu                 sync.Mutex
	running            bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global background job manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{}
	})
	return globalManager
}

// Start starts the background tickers
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[Jobs] Starting background tasks")

	syncInterval := envMinutes("SYNC_INTERVAL_MINUTES", 360)
	m.syncTicker = time.NewTicker(syncInterval)
	m.wg.Add(1)
	go m.syncWorker(m.stopCh, syncInterval)

	// Flush pending view counters (Redis -> DB) every 15 seconds
	m.counterFlushTicker = time.NewTicker(15 * time.Second)
	m.wg.Add(1)
	go m.counterFlushWorker(m.stopCh)

	log.Info("[Jobs] Started successfully")
}

// Stop stops the background tickers and waits for workers to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[Jobs] Stopping background tasks...")

	if m.syncTicker != nil {
		m.syncTicker.Stop()
	}
	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}

	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	m.wg.Wait()

	log.Info("[Jobs] Stopped successfully")
}

func (m *Manager) syncWorker(stopCh <-chan struct{}, interval time.Duration) {
	defer m.wg.Done()
	log.Infof("[Jobs] Started sync worker (interval: %s)", interval)

	for {
		select {
		case <-stopCh:
			log.Info("[Jobs] Sync worker stopping")
			return
		case <-m.syncTicker.C:
			if _, err := RunSync(context.Background()); err != nil {
				log.Errorf("[Jobs] Scheduled sync failed: %v", err)
			}
		}
	}
}

func (m *Manager) counterFlushWorker(stopCh <-chan struct{}) {
	defer m.wg.Done()

	for {
		select {
		case <-stopCh:
			log.Info("[Jobs] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := counter.FlushAll(); err != nil {
				log.Errorf("[Jobs] Counter flush failed: %v", err)
			}
		}
	}
}

// RunSync executes one full open-data sync with configuration from env.
func RunSync(ctx context.Context) (*ingest.Stats, error) {
	client := opendata.NewClient(opendata.Config{
		BaseURL:  env.GetEnv("OPENDATA_BASE_URL", "https://data.calgary.ca/resource/vdjc-pybd.json"),
		AppToken: env.GetEnv("OPENDATA_APP_TOKEN", ""),
		PageSize: envInt("OPENDATA_PAGE_SIZE", 500),
		DaysBack: envInt("OPENDATA_DAYS_BACK", 30),
	})

	svc := ingest.NewService(client, repository.GetGlobalFactory().GetBusinessRepository(), envInt("OPENDATA_MAX_PAGES", 20))
	return svc.Run(ctx)
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(env.GetEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return def
}

func envMinutes(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Minute
}
