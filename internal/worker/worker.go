// File: internal/worker/worker.go
package worker

import (
	"sync"

	"github.com/labstack/gommon/log"
)

// Task 是交給 pool 執行的一段背景工作
type Task func()

// Pool 執行背景工作（例如快取寫入），Stop 會等佇列清空
type Pool interface {
	// Submit 不會阻塞；佇列已滿或 pool 已停止時丟棄工作並回傳 false
	Submit(Task) bool
	Stop()
}

// queueSize 每個 worker 可排隊的工作數
const queueSize = 16

// NewPool 建立 n 個 worker，n<=0 時視為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*queueSize)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		run(job)
	}
}

// run 單一工作 panic 不影響 worker
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Errorj(log.JSON{"event": "worker_task_panic", "panic": r})
		}
	}()
	job()
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		log.Warnj(log.JSON{"event": "worker_queue_full", "capacity": cap(p.jobs)})
		return false
	}
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
