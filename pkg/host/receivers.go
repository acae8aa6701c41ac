package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"go.uber.org/zap"
)

// RecordingReceiver keeps every handler invocation in memory
type RecordingReceiver struct {
	mu    sync.Mutex
	calls []types.CallbackMessage
}

func NewRecordingReceiver() *RecordingReceiver {
	return &RecordingReceiver{calls: make([]types.CallbackMessage, 0)}
}

func (r *RecordingReceiver) Call(method string, args ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, types.CallbackMessage{Handler: method, Args: args})
	return nil
}

// Calls returns a copy of the recorded invocations
func (r *RecordingReceiver) Calls() []types.CallbackMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.CallbackMessage, len(r.calls))
	copy(out, r.calls)
	return out
}

// WriterReceiver writes each invocation as a JSON line
type WriterReceiver struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterReceiver(w io.Writer) *WriterReceiver {
	return &WriterReceiver{w: w}
}

func (wr *WriterReceiver) Call(method string, args ...interface{}) error {
	data, err := json.Marshal(types.CallbackMessage{Handler: method, Args: args})
	if err != nil {
		return fmt.Errorf("failed to marshal callback: %w", err)
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()
	if _, err := wr.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write callback: %w", err)
	}
	return nil
}

// DefaultCallbackTimeout bounds a single callback POST
const DefaultCallbackTimeout = 10 * time.Second

// HTTPReceiver POSTs each invocation to a host URL. A single attempt is made
// so a callback is never delivered twice.
type HTTPReceiver struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPReceiver(url string, client *http.Client, logger *zap.Logger) *HTTPReceiver {
	if client == nil {
		client = &http.Client{Timeout: DefaultCallbackTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPReceiver{
		url:    url,
		client: client,
		logger: logger,
	}
}

func (hr *HTTPReceiver) Call(method string, args ...interface{}) error {
	data, err := json.Marshal(types.CallbackMessage{Handler: method, Args: args})
	if err != nil {
		return fmt.Errorf("failed to marshal callback: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, hr.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hr.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post callback to %s: %w", hr.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("callback to %s returned status %d: %s", hr.url, resp.StatusCode, string(body))
	}

	hr.logger.Sugar().Debugw("Posted callback", "url", hr.url, "handler", method)
	return nil
}

// Tee invokes every receiver in order and stops at the first failure
func Tee(receivers ...Receiver) Receiver {
	return ReceiverFunc(func(method string, args ...interface{}) error {
		for _, r := range receivers {
			if err := r.Call(method, args...); err != nil {
				return err
			}
		}
		return nil
	})
}
