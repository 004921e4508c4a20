package indexmanager

import (
	"log"
	"time"
)

const (
	defaultCommitPeriod  = 5 * time.Second
	defaultRefreshPeriod = 20 * time.Millisecond
)

// startSchedulers launches rt's background commit and refresh loops,
// deriving their periods from the index setting (clamped to sane
// defaults when unset). Grounded on internal/wal's GroupCommitter run
// loop: a ticker-driven background goroutine that periodically flushes
// buffered state, here applied to per-shard commit and searcher refresh
// instead of WAL fsync batching.
func (m *Manager) startSchedulers(rt *Runtime) {
	commitPeriod := rt.setting.CommitPeriod
	if commitPeriod <= 0 {
		commitPeriod = defaultCommitPeriod
	}
	refreshPeriod := rt.setting.RefreshPeriod
	if refreshPeriod <= 0 {
		refreshPeriod = defaultRefreshPeriod
	}

	go commitLoop(rt, commitPeriod, rt.cancel)
	for i := 0; i < rt.ShardCount(); i++ {
		rt.Shard(i).StartReopenWorker(rt.cancel, refreshPeriod)
	}
}

// commitLoop periodically flushes any shard with buffered, uncommitted
// mutations (§4.6's scheduled commit). Commit errors are logged, not
// propagated — a failed commit on one tick does not stop the loop.
func commitLoop(rt *Runtime, period time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for i := 0; i < rt.ShardCount(); i++ {
				s := rt.Shard(i)
				if !s.HasUncommitted() {
					continue
				}
				if err := s.Commit(); err != nil {
					log.Printf("indexmanager: commit %s/%d: %v", rt.Name(), i, err)
				}
			}
		case <-stop:
			return
		}
	}
}

func logClose(index string, shardNum int, err error) {
	log.Printf("indexmanager: close %s/%d: %v", index, shardNum, err)
}
