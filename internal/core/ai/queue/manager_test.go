package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chef-app/internal/core/ai/service"
	"chef-app/internal/pkg/common"
)

type echoProcessor struct {
	running atomic.Int32
	peak    atomic.Int32
	release chan struct{}
}

func (p *echoProcessor) ProcessRequest(ctx context.Context, prompt string) (*service.Response, error) {
	n := p.running.Add(1)
	defer p.running.Add(-1)
	for {
		old := p.peak.Load()
		if n <= old || p.peak.CompareAndSwap(old, n) {
			break
		}
	}
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &service.Response{Content: prompt, Model: "echo"}, nil
}

func TestProcessRequest(t *testing.T) {
	m := NewManager(&echoProcessor{}, Config{Workers: 2, MaxSize: 4})
	defer m.Close()

	resp, err := m.ProcessRequest(context.Background(), "Suppe")
	if err != nil {
		t.Fatalf("ProcessRequest() error = %v", err)
	}
	if resp.Content != "Suppe" {
		t.Errorf("Content = %q", resp.Content)
	}
	if st := m.Status(); st.ProcessedCount != 1 || st.Workers != 2 || st.MaxQueueSize != 4 {
		t.Errorf("Status() = %+v", st)
	}
}

func TestWorkersLimitConcurrency(t *testing.T) {
	p := &echoProcessor{release: make(chan struct{})}
	m := NewManager(p, Config{Workers: 2, MaxSize: 10})
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.ProcessRequest(context.Background(), "x"); err != nil {
				t.Errorf("ProcessRequest() error = %v", err)
			}
		}()
	}

	// 等兩個 worker 都忙碌後再放行
	deadline := time.Now().Add(2 * time.Second)
	for p.running.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	close(p.release)
	wg.Wait()

	if got := p.peak.Load(); got != 2 {
		t.Errorf("peak concurrency = %d, want 2", got)
	}
	if got := m.Status().ProcessedCount; got != 6 {
		t.Errorf("ProcessedCount = %d, want 6", got)
	}
}

func TestQueueFull(t *testing.T) {
	p := &echoProcessor{release: make(chan struct{})}
	m := NewManager(p, Config{Workers: 1, MaxSize: 1})
	defer func() {
		close(p.release)
		m.Close()
	}()

	// 第一個請求佔住 worker
	if _, err := m.Enqueue(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for p.running.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// 第二個填滿隊列
	if _, err := m.Enqueue(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}

	_, err := m.Enqueue(context.Background(), "c")
	if !errors.Is(err, common.ErrTooManyRequests) {
		t.Errorf("Enqueue() on full queue error = %v, want TOO_MANY_REQUESTS", err)
	}
}

func TestCanceledContext(t *testing.T) {
	p := &echoProcessor{release: make(chan struct{})}
	m := NewManager(p, Config{Workers: 1, MaxSize: 2})
	defer func() {
		close(p.release)
		m.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.ProcessRequest(ctx, "langsam")
	if !errors.Is(err, common.ErrGatewayTimeout) && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestClosed(t *testing.T) {
	m := NewManager(&echoProcessor{}, Config{})
	m.Close()
	m.Close()

	if _, err := m.ProcessRequest(context.Background(), "x"); !errors.Is(err, common.ErrServiceUnavailable) {
		t.Errorf("after Close error = %v, want SERVICE_UNAVAILABLE", err)
	}
	if st := m.Status(); st.Workers != 1 || st.MaxQueueSize != 1 {
		t.Errorf("defaults = %+v", st)
	}
}
