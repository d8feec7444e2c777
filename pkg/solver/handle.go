package solver

import (
	"time"

	"github.com/fxnlabs/densolver/internal/metrics"
	"go.uber.org/zap"
)

// Handle binds solver calls to one backend context and one stream. A Handle
// is not safe for concurrent use; give each goroutine its own.
type Handle struct {
	native nativeHandle
	stream Stream
	logger *zap.Logger
	alive  bool
}

type Option func(*Handle)

// WithLogger sets the logger calls are reported to at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handle) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStream binds the handle to s from creation.
func WithStream(s Stream) Option {
	return func(h *Handle) {
		h.stream = s
	}
}

// Create opens a backend context and returns a handle bound to it.
func Create(opts ...Option) (*Handle, error) {
	h := &Handle{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	native, err := newNative()
	if err != nil {
		return nil, err
	}
	h.native = native
	h.alive = true
	if err := h.native.setStream(h.stream); err != nil {
		_ = h.native.destroy()
		return nil, err
	}
	h.logger.Debug("handle created", zap.String("backend", Backend), zap.Uint64("stream", uint64(h.stream)))
	return h, nil
}

// Destroy releases the backend context. The handle cannot be used afterwards.
func (h *Handle) Destroy() error {
	return h.guard("destroy", func() error {
		h.alive = false
		return h.native.destroy()
	})
}

func (h *Handle) SetStream(s Stream) error {
	return h.guard("set_stream", func() error {
		if err := h.native.setStream(s); err != nil {
			return err
		}
		h.stream = s
		return nil
	})
}

func (h *Handle) Stream() (Stream, error) {
	var s Stream
	err := h.guard("get_stream", func() error {
		s = h.stream
		return nil
	})
	return s, err
}

// guard runs fn as one API call: it rejects dead handles, converts panics
// raised below it into a Status, and records the outcome.
func (h *Handle) guard(routine string, fn func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
			if h != nil {
				h.logger.Error("recovered panic", zap.String("routine", routine), zap.Any("panic", r))
			}
		}
		h.observe(routine, err, time.Since(start))
	}()
	if h == nil || !h.alive {
		return StatusNotInitialized
	}
	return fn()
}

func recovered(r any) error {
	if st, ok := r.(Status); ok {
		return asError(st)
	}
	return StatusInternalError
}

func (h *Handle) observe(routine string, err error, elapsed time.Duration) {
	st := StatusOf(err)
	metrics.SolverCalls.WithLabelValues(routine, st.String()).Inc()
	if h == nil {
		return
	}
	h.logger.Debug("solver call",
		zap.String("routine", routine),
		zap.Stringer("status", st),
		zap.Duration("elapsed", elapsed))
}

// sized runs a size query as one API call and records the reported size.
func (h *Handle) sized(routine string, query func() (int, error)) (int, error) {
	var lwork int
	err := h.guard(routine+"_bufferSize", func() error {
		var err error
		lwork, err = query()
		return err
	})
	metrics.SizeQueries.WithLabelValues(routine).Inc()
	if err == nil {
		metrics.WorkspaceBytes.WithLabelValues(routine).Set(float64(lwork))
	}
	return lwork, err
}
