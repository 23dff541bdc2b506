// Copyright 2026 go-tile Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bandred reduces a random Hermitian band matrix to tridiagonal
// form and reports timings, with an optional eigenvalue check against a
// dense reference.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ajroetker/go-tile/band"
	"github.com/ajroetker/go-tile/tile"
)

type config struct {
	n       int
	bandw   int
	nb      int
	threads int
	target  string
	seed    int64
	verify  bool
}

func main() {
	var cfg config
	cmd := &cobra.Command{
		Use:   "bandred",
		Short: "tridiagonal reduction of a Hermitian band matrix by bulge chasing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
		SilenceUsage: true,
	}
	cmd.Flags().IntVar(&cfg.n, "n", 1024, "matrix order")
	cmd.Flags().IntVar(&cfg.bandw, "band", 32, "bandwidth (subdiagonals plus main diagonal)")
	cmd.Flags().IntVar(&cfg.nb, "nb", 256, "tile size")
	cmd.Flags().IntVar(&cfg.threads, "threads", 0, "worker threads (0 = all)")
	cmd.Flags().StringVar(&cfg.target, "target", tile.HostTask.String(), "execution target")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&cfg.verify, "verify", false, "check eigenvalues against a dense solver")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg config) error {
	if cfg.n < 1 || cfg.bandw < 1 || cfg.nb < 1 {
		return fmt.Errorf("n, band, and nb must be positive")
	}
	if cfg.bandw > cfg.n {
		return fmt.Errorf("bandwidth %d exceeds matrix order %d", cfg.bandw, cfg.n)
	}
	target, err := tile.ParseTarget(cfg.target)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	session := tile.NewSession()
	if cfg.threads > 0 {
		session.NumThreads = cfg.threads
	}
	p.Printf("order %d, bandwidth %d, tile size %d, %d threads, target %s, isa %s\n",
		cfg.n, cfg.bandw, cfg.nb, session.NumThreads, target, session.VectorISA)

	rng := rand.New(rand.NewSource(cfg.seed))
	h := tile.NewLocalHermitian[float64](tile.Lower, cfg.n, cfg.nb)
	for i := 0; i < cfg.n; i++ {
		for j := max(0, i-cfg.bandw+1); j <= i; j++ {
			h.Set(i, j, rng.NormFloat64())
		}
	}

	var ref *mat.SymDense
	if cfg.verify {
		ref = mat.NewSymDense(cfg.n, nil)
		for i := 0; i < cfg.n; i++ {
			for j := max(0, i-cfg.bandw+1); j <= i; j++ {
				ref.SetSym(i, j, h.At(i, j))
			}
		}
	}

	start := time.Now()
	refl := band.ReduceToTridiag(h, cfg.bandw,
		tile.WithTarget(target),
		tile.WithMaxPanelThreads(session.NumThreads),
		tile.WithSession(session))
	elapsed := time.Since(start)

	var reflectors int
	for sweep := 0; sweep < refl.Sweeps(); sweep++ {
		reflectors += refl.Blocks(sweep)
	}
	p.Printf("reduced in %v: %d sweeps, %d reflectors\n",
		elapsed.Round(time.Microsecond), refl.Sweeps(), reflectors)

	d, e := band.Tridiag(h)
	p.Printf("tridiagonal norms: diag %.6g, offdiag %.6g\n",
		floats.Norm(d, 2), floats.Norm(e, 2))

	if cfg.verify {
		if err := verify(h, ref); err != nil {
			return err
		}
		p.Printf("eigenvalues match the dense reference\n")
	}
	return nil
}

// verify compares the eigenvalues of the reduced tridiagonal matrix
// with those of the dense original. The reduction is an orthogonal
// similarity, so the spectra must agree to rounding.
func verify(h tile.Hermitian[float64], ref *mat.SymDense) error {
	n := h.N()
	d, e := band.Tridiag(h)
	tri := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		tri.SetSym(i, i, d[i])
		if i+1 < n {
			tri.SetSym(i+1, i, e[i])
		}
	}

	var eigRef, eigTri mat.EigenSym
	if !eigRef.Factorize(ref, false) || !eigTri.Factorize(tri, false) {
		return fmt.Errorf("eigendecomposition failed")
	}
	want := eigRef.Values(nil)
	got := eigTri.Values(nil)
	sort.Float64s(want)
	sort.Float64s(got)

	scale := math.Max(1, math.Abs(want[0]))
	if math.Abs(want[n-1]) > scale {
		scale = math.Abs(want[n-1])
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9*scale*float64(n) {
			return fmt.Errorf("eigenvalue %d: got %g, want %g", i, got[i], want[i])
		}
	}
	return nil
}
