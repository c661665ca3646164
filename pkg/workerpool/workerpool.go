package workerpool

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

//go:generate mockgen -source=workerpool.go -destination=mock_workerpool.go -package=workerpool

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

type Task func() error

// WorkerPool runs submitted tasks on a fixed set of goroutines. Task errors
// are logged, never returned to the submitter.
type WorkerPool struct {
	name string
	pool chan Task
	once sync.Once
}

func New(name string, size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{name: name, pool: make(chan Task, size)}

	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("task execution failed", zap.String("pool", wp.name), zap.Error(err))
		}
	}
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	wp.once.Do(func() { close(wp.pool) })
}
