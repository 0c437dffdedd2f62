package butterfly

import (
	"runtime"
	"testing"

	"github.com/gogpu/butterfly/internal/parallel"
)

func TestDefaultOptions(t *testing.T) {
	o := newOptions(nil)
	if o.workers != 1 {
		t.Errorf("workers = %d, want 1", o.workers)
	}
	if o.iterations != 1 {
		t.Errorf("iterations = %d, want 1", o.iterations)
	}
}

func TestWithIterations(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{3, 3},
		{1, 1},
		{0, 1},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := newOptions([]Option{WithIterations(tt.in)}).iterations; got != tt.want {
			t.Errorf("WithIterations(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWithWorkers(t *testing.T) {
	o := newOptions([]Option{WithWorkers(8)})
	if o.workers != 8 {
		t.Errorf("workers = %d, want 8", o.workers)
	}

	// Zero is resolved to GOMAXPROCS by the pool.
	o = newOptions([]Option{WithWorkers(0)})
	if got := parallel.NewWorkerPool(o.workers).Workers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("WithWorkers(0) pool size = %d, want %d", got, runtime.GOMAXPROCS(0))
	}
}

func TestNilOptionIgnored(t *testing.T) {
	o := newOptions([]Option{nil, WithIterations(2), nil})
	if o.iterations != 2 {
		t.Errorf("iterations = %d, want 2", o.iterations)
	}
}
