package quadmesh

import "mdc/internal/pool"

func newTestPool() *pool.WorkerPool {
	return pool.NewWorkerPool(2, 64)
}
