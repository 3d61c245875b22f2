package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Task 是交給背景 worker 執行的工作
type Task func()

// DefaultQueueSize 是 queue<=0 時使用的佇列長度
const DefaultQueueSize = 64

// Pool 以固定數量的 goroutine 執行背景工作，例如快取回寫
type Pool interface {
	// Submit 排入工作且不會阻塞；佇列已滿或 Stop 之後回傳 false 且不執行
	Submit(Task) bool
	// Stop 不再接受新工作，並等待已排入的工作完成
	Stop()
}

// NewPool 建立 n 個 worker 與長度 queue 的佇列，n<=0 時為 1。
// 單一工作 panic 會被記錄下來，不會讓 worker 結束。
func NewPool(n, queue int, log logrus.FieldLogger) Pool {
	if n <= 0 {
		n = 1
	}
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	p := &pool{jobs: make(chan Task, queue), log: log}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs    chan Task
	wg      sync.WaitGroup
	log     logrus.FieldLogger
	mu      sync.RWMutex
	stopped bool
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.WithField("panic", r).Error("worker task panicked")
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
