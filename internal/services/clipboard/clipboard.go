// Package clipboard copies rendered reports to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("system clipboard is unavailable")

// Copier copies a rendered report.
type Copier interface {
	Copy(report string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	unsupported func() bool
	write       func(string) error
}

// NewService constructs a clipboard-backed Copier.
func NewService() *Service {
	return &Service{
		unsupported: func() bool { return clipboard.Unsupported },
		write:       clipboard.WriteAll,
	}
}

// Copy writes report to the system clipboard.
func (service *Service) Copy(report string) error {
	if service.unsupported() {
		return ErrUnavailable
	}
	if err := service.write(report); err != nil {
		return fmt.Errorf("copy report to clipboard: %w", err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
