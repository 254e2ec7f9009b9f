package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/portmaint/portmaint/pkg/cache"
	"github.com/portmaint/portmaint/pkg/maint"
	"github.com/portmaint/portmaint/pkg/observability"
)

// loadTreeReport returns the classification report for root, from cache when
// a fresh enough scan exists. The second return reports a cache hit. A
// corrupt cache entry is treated as a miss.
func (c *CLI) loadTreeReport(ctx context.Context, store cache.Cache, root string, refresh bool) (*maint.TreeReport, bool, error) {
	policy := c.Config.MaintPolicy()
	key := cache.ScanKey(root, policy.Domain, policy.ProxyHerd, policy.Unmaintained)

	if !refresh {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var report maint.TreeReport
			if json.Unmarshal(data, &report) == nil {
				observability.Cache().OnCacheHit(ctx, "scan")
				return &report, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scan")
	}

	observability.Scan().OnScanStart(ctx, root)
	start := time.Now()
	report, err := policy.ScanTree(ctx, root)
	if err != nil {
		observability.Scan().OnScanComplete(ctx, root, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Scan().OnScanComplete(ctx, root, report.Total, time.Since(start), nil)

	if data, err := json.Marshal(report); err == nil {
		if err := store.Set(ctx, key, data, scanTTL); err != nil {
			c.Logger.Debugf("cache write failed: %v", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "scan", len(data))
		}
	}

	return report, false, nil
}
