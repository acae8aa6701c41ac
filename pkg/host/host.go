// Package host delivers operation results back to the host application.
//
// The bridge never holds the host object itself, only a Receiver capability
// that can invoke a named handler. Each operation delivers at most one
// callback, and only on success.
package host

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Layr-Labs/colorchain-go/pkg/types"
	"go.uber.org/zap"
)

// Handler names invoked on the host
const (
	HandlerSetBalance = "set_balance"
	HandlerSetColor   = "set_color"
)

// ErrAlreadyDelivered is returned when an operation tries to deliver a second result
var ErrAlreadyDelivered = errors.New("host: result already delivered for this operation")

// Receiver invokes a named handler on the host
type Receiver interface {
	Call(method string, args ...interface{}) error
}

// ReceiverFunc adapts a function to a Receiver
type ReceiverFunc func(method string, args ...interface{}) error

func (f ReceiverFunc) Call(method string, args ...interface{}) error {
	return f(method, args...)
}

// Delivery is the single use result channel of one operation
type Delivery struct {
	receiver Receiver
	logger   *zap.Logger

	mu        sync.Mutex
	delivered bool
}

func NewDelivery(receiver Receiver, logger *zap.Logger) *Delivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Delivery{
		receiver: receiver,
		logger:   logger,
	}
}

// Notify invokes handler with payload. A receiver failure is reported as a
// HostDeliveryError and still consumes the delivery.
func (d *Delivery) Notify(handler string, payload string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.delivered {
		return ErrAlreadyDelivered
	}
	if d.receiver == nil {
		return types.Errorf(types.ErrorKindHostDelivery, "", "no receiver for handler %s", handler)
	}
	d.delivered = true

	if err := d.receiver.Call(handler, payload); err != nil {
		d.logger.Sugar().Errorw("Failed to deliver callback to host",
			"handler", handler,
			"error", err,
		)
		return types.NewError(types.ErrorKindHostDelivery, "", fmt.Errorf("handler %s: %w", handler, err))
	}

	d.logger.Sugar().Debugw("Delivered callback to host", "handler", handler)
	return nil
}

// Delivered reports whether Notify has been called
func (d *Delivery) Delivered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delivered
}

// BalancePayload renders a balance for set_balance
func BalancePayload(balance types.Balance) string {
	return balance.String()
}

// ColorPayload renders a color for set_color as {"r":..,"g":..,"b":..}
func ColorPayload(color types.Color) (string, error) {
	data, err := json.Marshal(color)
	if err != nil {
		return "", fmt.Errorf("failed to marshal color: %w", err)
	}
	return string(data), nil
}

// ParseColorPayload is the inverse of ColorPayload
func ParseColorPayload(payload string) (types.Color, error) {
	var color types.Color
	if err := json.Unmarshal([]byte(payload), &color); err != nil {
		return types.Color{}, fmt.Errorf("failed to unmarshal color payload: %w", err)
	}
	return color, nil
}
