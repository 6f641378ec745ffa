// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/temirov/dumpo/internal/types"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard. Failures wrap types.ErrOutput.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available on this system", types.ErrOutput)
	}
	if copyErr := clipboard.WriteAll(text); copyErr != nil {
		return fmt.Errorf("%w: copy to clipboard: %w", types.ErrOutput, copyErr)
	}
	return nil
}

var _ Copier = (*Service)(nil)
