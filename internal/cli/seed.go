package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SeedFile is the fixture format read by `vendctl seed`.
type SeedFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Products []struct {
		Name            string `yaml:"name"`
		Seller          string `yaml:"seller"`
		Cost            int64  `yaml:"cost"`
		AmountAvailable int64  `yaml:"amountAvailable"`
	} `yaml:"products"`
	// Reserve, when present, replaces the machine's reserve. Missing
	// denominations are set to zero.
	Reserve map[int64]int64 `yaml:"reserve"`
}

// LoadSeedFile parses a fixture, rejecting unknown keys.
func LoadSeedFile(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f SeedFile

	err := dec.Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	return &f, nil
}

// ReserveFromSeed builds a full reserve from the fixture's counts.
func ReserveFromSeed(counts map[int64]int64) (coins.Reserve, error) {
	reserve := coins.EmptyReserve()

	for raw, n := range counts {
		c, err := coins.Parse(raw)
		if err != nil {
			return nil, err
		}

		reserve[c] = n
	}

	err := reserve.Validate()
	if err != nil {
		return nil, err
	}

	return reserve, nil
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load users, products and a coin float from a YAML fixture",
		Long: `Load users, products and a coin float from a YAML fixture.

Example file:
  users:
    - {username: sam, role: seller}
    - {username: bea, role: buyer}
  products:
    - {name: cola, seller: sam, cost: 85, amountAvailable: 10}
  reserve: {5: 10, 10: 10, 20: 5}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "open seed file", err)
			}
			defer f.Close()

			seed, err := LoadSeedFile(f)
			if err != nil {
				return WrapExitError(ExitCommandError, "read seed file", err)
			}

			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runSeed(ctx, a, seed)
			})
		},
	}

	return cmd
}

type seedOutput struct {
	Users    map[string]uint64 `json:"users"`
	Products map[string]uint64 `json:"products"`
	Reserve  int64             `json:"reserveTotal,omitempty"`
}

func runSeed(ctx context.Context, a *app, seed *SeedFile) error {
	out := seedOutput{
		Users:    make(map[string]uint64, len(seed.Users)),
		Products: make(map[string]uint64, len(seed.Products)),
	}

	for _, u := range seed.Users {
		acc, err := a.catalog.RegisterUser(ctx, u.Username, u.Role)
		if err != nil {
			return WrapExitError(ExitRejected, "seed user "+u.Username, err)
		}

		out.Users[acc.Username] = acc.ID
	}

	for _, p := range seed.Products {
		sellerID, ok := out.Users[p.Seller]
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("product %q: seller %q is not in the file", p.Name, p.Seller))
		}

		created, err := a.catalog.CreateProduct(ctx, sellerID, p.Name, p.Cost, p.AmountAvailable)
		if err != nil {
			return WrapExitError(ExitRejected, "seed product "+p.Name, err)
		}

		out.Products[created.Name] = created.ID
	}

	if seed.Reserve != nil {
		reserve, err := ReserveFromSeed(seed.Reserve)
		if err != nil {
			return WrapExitError(ExitCommandError, "seed reserve", err)
		}

		err = a.engine.ReplaceReserve(ctx, reserve)
		if err != nil {
			return engineError("seed reserve", err)
		}

		out.Reserve = reserve.Total()
	}

	return a.out.Success(out, func(w io.Writer) {
		fmt.Fprintf(w, "seeded %d users, %d products\n", len(out.Users), len(out.Products))

		for name, id := range out.Users {
			fmt.Fprintf(w, "  user %s = %d\n", name, id)
		}

		for name, id := range out.Products {
			fmt.Fprintf(w, "  product %s = %d\n", name, id)
		}
	})
}
