// Package cfg dispatches several calculations. It avoids to start a
// specific program for each calculation.
package cfg

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/kpotier/molrdf/pkg/util"
)

// Cfg is a structure where the types of calculations are stored. It can be
// instanced through the New method. The length of the Files slice must be equal
// to the length of the Types files. Each calculation requires a configuration
// file where the parameters required to run the calculation are stored.
type Cfg struct {
	Types [][]string `toml:"types"`
	Files [][]string `toml:"files"`
}

// New returns an instance of the Cfg structure. It opens and reads the
// configuration file where Types and Files are stored. The configuration file
// must use the TOML format.
func New(path string) (Cfg, error) {
	var cfg Cfg
	err := util.Decode(path, &cfg)
	if err != nil {
		return Cfg{}, err
	}

	if len(cfg.Files) != len(cfg.Types) {
		return Cfg{}, fmt.Errorf("length of Files isn't equal to Types (%d vs %d)",
			len(cfg.Files), len(cfg.Types))
	}

	for k, v := range cfg.Files {
		if len(v) != len(cfg.Types[k]) {
			return Cfg{}, fmt.Errorf("length of Files isn't equal to Types (%d vs %d, step %d)",
				len(v), len(cfg.Types[k]), k)
		}
	}

	return cfg, nil
}

// Start dispatches and performs the calculations. If several calculations are
// in the same array (e.g Types: ["x", "y", "z"]), they will be performed in
// parallel. The gr calculation uses its own threads; the others use one.
//
// It is a thread blocking method. If an error occurs for a specific
// calculation, the calculation will stop and log the error but the method won't
// stop. It returns the number of failed calculations. Once ctx is done, the
// remaining steps are skipped.
func (c Cfg) Start(ctx context.Context, log *log.Logger) int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	launch := func(step, rtn int, name string) {
		err := Launch(ctx, name, c.Files[step][rtn], log)
		if err != nil {
			log.Println(fmt.Errorf("Launch (step %d, routine %d): %w", step, rtn, err))
			mu.Lock()
			failed++
			mu.Unlock()
		}
	}

	for step, types := range c.Types {
		if ctx.Err() != nil {
			log.Printf("step %d skipped: %v", step, ctx.Err())
			continue
		}

		for rtn, name := range types {
			wg.Add(1)
			go func(step, rtn int, name string) {
				defer wg.Done()
				launch(step, rtn, name)
			}(step, rtn, name)
		}
		wg.Wait()
	}

	return failed
}
