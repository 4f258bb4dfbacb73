// Package printer sends ESC/POS slips to the front desk thermal printer.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ErrDisabled is returned by the printer used when none is configured
var ErrDisabled = errors.New("printer: no receipt printer configured")

// Printer delivers a rendered slip
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Kind names the transport for status reporting
	Kind() string
}

// Config selects the transport. Type is "network", "device" or "none".
type Config struct {
	Type    string
	Address string
	Device  string
	Timeout time.Duration
}

// New builds the printer described by cfg
func New(cfg Config) (Printer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	switch cfg.Type {
	case "network":
		if cfg.Address == "" {
			return nil, errors.New("printer: PRINTER_ADDRESS is required for a network printer")
		}
		return &networkPrinter{address: cfg.Address, timeout: cfg.Timeout}, nil
	case "device":
		if cfg.Device == "" {
			return nil, errors.New("printer: PRINTER_DEVICE is required for a device printer")
		}
		return &devicePrinter{path: cfg.Device}, nil
	case "", "none":
		return Disabled(), nil
	}
	return nil, fmt.Errorf("printer: unknown printer type %q", cfg.Type)
}

// Disabled returns a printer that rejects every job with ErrDisabled
func Disabled() Printer {
	return disabled{}
}

type disabled struct{}

func (disabled) Print(context.Context, []byte) error { return ErrDisabled }
func (disabled) Kind() string { return "none" }

// networkPrinter talks raw TCP, usually port 9100
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Kind() string { return "network" }

// devicePrinter writes to a character device such as /dev/usb/lp0
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Kind() string { return "device" }
