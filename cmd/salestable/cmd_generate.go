package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/zeebo/clingy"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/config"
	"storj.io/sales-table/pkg/fancy"
	"storj.io/sales-table/pkg/salescsv"
	"storj.io/sales-table/pkg/salesgen"
)

type cmdGenerate struct {
	config  string
	count   int
	sellers int
	invalid float64
	seed    int
	force   bool
	csvPath string
}

func (cmd *cmdGenerate) Setup(params clingy.Parameters) {
	cmd.config = stringFlag(params, "config", "The configuration file whose catalogue is sold from", "")
	cmd.count = intFlag(params, "count", "Number of records to generate", 1000)
	cmd.sellers = intFlag(params, "sellers", "Number of distinct sellers", 10)
	cmd.invalid = floatFlag(params, "invalid", "Share of records to make invalid, between 0 and 1", 0.05)
	cmd.seed = intFlag(params, "seed", "Random seed (random when zero)", 0)
	cmd.force = toggleFlag(params, "force", "Overwrite the CSV without asking", false)
	cmd.csvPath = stringArg(params, "CSVPATH", "Path on disk to write the CSV to")
}

func (cmd *cmdGenerate) Execute(ctx context.Context) (err error) {
	stdout := clingy.Stdout(ctx)

	switch {
	case cmd.count < 1:
		return errors.New("count must be positive")
	case cmd.sellers < 1:
		return errors.New("sellers must be positive")
	case cmd.invalid < 0 || cmd.invalid > 1:
		return errors.New("invalid must be between 0 and 1")
	}

	cfg := config.Default()
	if cmd.config != "" {
		cfg, err = config.Load(cmd.config)
		if err != nil {
			return fmt.Errorf("unable to load config: %w", err)
		}
	}
	products, err := cfg.LoadCatalogue()
	if err != nil {
		return fmt.Errorf("unable to load catalogue: %w", err)
	}

	if err := confirmOverwrite(cmd.csvPath, cmd.force); err != nil {
		return err
	}

	seed := uint64(cmd.seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	records := salesgen.Generate(rand.New(rand.NewPCG(seed, seed)), products, salesgen.Options{
		Count:   cmd.count,
		Sellers: cmd.sellers,
		Invalid: cmd.invalid,
	})

	f, err := os.Create(cmd.csvPath)
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() { err = errs.Combine(err, f.Close()) }()

	if err := salescsv.Write(f, records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	fancy.Fprintf(stdout, fancy.Good, "Wrote %d records to %s (seed %d)\n", len(records), cmd.csvPath, seed)
	return nil
}
