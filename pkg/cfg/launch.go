package cfg

import (
	"context"
	"fmt"
	"log"

	"github.com/kpotier/molrdf/pkg/disttwoatoms"
	"github.com/kpotier/molrdf/pkg/fold"
	"github.com/kpotier/molrdf/pkg/gr"
	"github.com/kpotier/molrdf/pkg/radiusgyration"
)

// Calculation is an interface that only contains one method: Start. Every
// calculation must have a Start method that will launch the calculation. It
// must be a thread blocking method.
type Calculation interface {
	Start(ctx context.Context, log *log.Logger) error
}

// Launch launchs a specific calculation. It is a thread blocking method. The
// parameters required to launch the calculation must be in a file.
func Launch(ctx context.Context, name string, path string, log *log.Logger) error {
	var (
		err error
		cal Calculation
	)

	switch name {
	case gr.Type:
		cal, err = gr.New(path)
	case disttwoatoms.Type:
		cal, err = disttwoatoms.New(path)
	case radiusgyration.Type:
		cal, err = radiusgyration.New(path)
	case fold.Type:
		cal, err = fold.New(path)
	default:
		return fmt.Errorf("calculation `%s` doesn't exist", name)
	}

	if err != nil {
		return fmt.Errorf("%s: New: %w", name, err)
	}

	err = cal.Start(ctx, log)
	if err != nil {
		return fmt.Errorf("%s: Start: %w", name, err)
	}

	return nil
}
