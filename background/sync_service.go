// Package background contains services that run independently of the HTTP
// request-response cycle.
package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/user/vgdirect-go/catalog"
	"github.com/user/vgdirect-go/config"
)

// storeResult is the outcome of storing one catalog entry.
type storeResult struct {
	RawgID   int
	Title    string
	Inserted bool
	Err      error
}

const (
	numStoreWorkers = 3
	syncOpTimeout   = 30 * time.Second
)

// StartCatalogSyncService launches the background worker that periodically
// pulls a page of the external game catalog and stores unseen games. The
// service keeps the local games table warm so that browsing does not start
// from an empty database. It shuts down gracefully when stopChan is closed.
func StartCatalogSyncService(catalogService *catalog.CatalogService, cfg *config.CatalogConfig, stopChan <-chan struct{}) {
	log.Println("Catalog sync service starting...")

	gamesToStoreChan := make(chan catalog.GameSummary, 2*cfg.SyncPageSize)
	resultsChan := make(chan storeResult, 2*cfg.SyncPageSize)

	// mainWg tracks the collector; workersWg tracks the store workers so
	// resultsChan can be closed once they all exit.
	var mainWg sync.WaitGroup
	var workersWg sync.WaitGroup

	go func() {
		defer log.Println("Catalog sync orchestrator stopped.")

		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		for i := 0; i < numStoreWorkers; i++ {
			workersWg.Add(1)
			go func(workerID int) {
				defer workersWg.Done()
				for summary := range gamesToStoreChan {
					ctx, cancel := context.WithTimeout(context.Background(), syncOpTimeout)
					inserted, err := catalogService.StoreSummary(ctx, &summary)
					cancel()
					resultsChan <- storeResult{
						RawgID:   summary.ID,
						Title:    summary.Name,
						Inserted: inserted,
						Err:      err,
					}
				}
				log.Printf("Catalog sync worker %d exiting.", workerID)
			}(i)
		}

		mainWg.Add(1)
		go func() {
			defer mainWg.Done()
			for result := range resultsChan {
				switch {
				case result.Err != nil:
					log.Printf("Catalog sync: storing %q (rawg_id %d) failed: %v",
						result.Title, result.RawgID, result.Err)
				case result.Inserted:
					log.Printf("Catalog sync: stored %q (rawg_id %d)", result.Title, result.RawgID)
				}
			}
		}()

		go func() {
			workersWg.Wait()
			close(resultsChan)
		}()

		// Warm the table once at startup, then on every tick.
		fetchAndSendGames(catalogService, cfg.SyncPageSize, gamesToStoreChan)

		for {
			select {
			case <-ticker.C:
				fetchAndSendGames(catalogService, cfg.SyncPageSize, gamesToStoreChan)
			case <-stopChan:
				log.Println("Catalog sync: stop signal received, draining workers...")
				close(gamesToStoreChan)
				mainWg.Wait()
				return
			}
		}
	}()
}

// fetchAndSendGames pulls one catalog page and queues its entries for the
// store workers. The send is non-blocking so a slow database never stalls
// the orchestrator; skipped entries are retried on a later tick.
func fetchAndSendGames(catalogService *catalog.CatalogService, pageSize int, gamesToStoreChan chan<- catalog.GameSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), syncOpTimeout)
	defer cancel()

	list, err := catalogService.ListGames(ctx, "", 0, pageSize)
	if err != nil {
		log.Printf("Catalog sync: fetching catalog page failed: %v", err)
		return
	}

	for _, summary := range list.Results {
		select {
		case gamesToStoreChan <- summary:
		default:
			log.Printf("Catalog sync: store queue full, skipping rawg_id %d this tick", summary.ID)
		}
	}
}
