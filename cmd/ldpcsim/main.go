// ldpcsim loads an LDPC code from file and drives a binary-symmetric-channel
// Monte Carlo loop against it, reporting the observed frame-error rate.
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/qkdrecon/ldpc4qkd/ldpc"
	"github.com/qkdrecon/ldpc4qkd/ldpc/format"
	flag "github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat"
)

var (
	binCSCPath    = flag.String("bincsc", "", "Path to a bincsc.json mother matrix.")
	qcCSCPath     = flag.String("qccsc", "", "Path to a qccsc.json mother matrix.")
	alistPath     = flag.String("alist", "", "Path to an alist mother matrix.")
	rateAdaptPath = flag.String("rate_adapt_csv", "", "Path to a rate-adaption CSV. Optional.")
	initialK      = flag.Int("initial_k", 0, "Initial number of rate-adaption row combinations.")
	dropZeroRow   = flag.Bool("drop_zero_row", false, "Drop rate-adapted rows with empty support instead of keeping them.")

	trials  = flag.Int("trials", 100, "Number of BSC trials to run.")
	p       = flag.Float64("p", 0.04, "Binary symmetric channel crossover probability.")
	maxIter = flag.Int("max_iter", 50, "Maximum belief propagation iterations per trial.")
	vsat    = flag.Float64("vsat", 100, "Message saturation value for belief propagation.")
	seed    = flag.Int64("seed", 42, "PRNG seed for reproducible trials.")
)

func main() {
	flag.Parse()

	code, err := loadCode()
	if err != nil {
		log.Fatalf("loading code: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	failures := make([]float64, *trials)
	anyFailed := false
	for t := 0; t < *trials; t++ {
		ok, err := runTrial(code, rng)
		if err != nil {
			log.Fatalf("trial %d: %v", t, err)
		}
		if !ok {
			failures[t] = 1
			anyFailed = true
		}
	}

	fer := stat.Mean(failures, nil)
	stderr := math.Sqrt(stat.Variance(failures, nil) / float64(*trials))
	fmt.Printf("trials=%d p=%v FER=%v stderr=%v\n", *trials, *p, fer, stderr)

	if anyFailed {
		os.Exit(1)
	}
}

func loadCode() (*ldpc.RateAdaptiveCode, error) {
	var pairs ldpc.RateAdaption
	if *rateAdaptPath != "" {
		f, err := os.Open(*rateAdaptPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		pairs, err = format.ReadRateAdaptionCSV(f)
		if err != nil {
			return nil, err
		}
	}

	policy := ldpc.KeepZeroRow
	if *dropZeroRow {
		policy = ldpc.DropZeroRow
	}

	switch {
	case *qcCSCPath != "":
		f, err := os.Open(*qcCSCPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		q, err := format.ReadQCCSC(f)
		if err != nil {
			return nil, err
		}
		return ldpc.NewQCCode(q, pairs, *initialK, policy)
	case *binCSCPath != "":
		f, err := os.Open(*binCSCPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := format.ReadBinCSC(f)
		if err != nil {
			return nil, err
		}
		return newCode(m, pairs, policy)
	case *alistPath != "":
		f, err := os.Open(*alistPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		m, err := format.ReadAlist(f)
		if err != nil {
			return nil, err
		}
		return newCode(m, pairs, policy)
	default:
		return nil, fmt.Errorf("one of --bincsc, --qccsc, --alist must be given")
	}
}

func newCode(m *ldpc.BinarySparseMatrix, pairs ldpc.RateAdaption, policy ldpc.ZeroRowPolicy) (*ldpc.RateAdaptiveCode, error) {
	if len(pairs) == 0 {
		return ldpc.NewCode(m), nil
	}
	return ldpc.NewRateAdaptiveCode(m, pairs, *initialK, policy)
}

func runTrial(code *ldpc.RateAdaptiveCode, rng *rand.Rand) (bool, error) {
	n := code.NCols()
	x := make([]uint8, n)
	for i := range x {
		if rng.Float64() < 0.5 {
			x[i] = 1
		}
	}

	syndrome, err := code.EncodeAtCurrentRate(x)
	if err != nil {
		return false, err
	}

	xNoised := make([]uint8, n)
	copy(xNoised, x)
	for i := range xNoised {
		if rng.Float64() < *p {
			xNoised[i] ^= 1
		}
	}

	vlog := math.Log((1 - *p) / *p)
	llrs := make([]float64, n)
	for i, b := range xNoised {
		llrs[i] = vlog * (1 - 2*float64(b))
	}

	xHat, ok, err := code.DecodeAtCurrentRate(llrs, syndrome, *maxIter, *vsat)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	for i := range x {
		if xHat[i] != x[i] {
			return false, nil
		}
	}
	return true, nil
}
