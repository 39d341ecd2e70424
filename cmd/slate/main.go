// Package main provides the Slate convolution engine CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"k8s.io/klog/v2"

	"github.com/slate-ml/slate/internal/backend/cpu"
	"github.com/slate-ml/slate/internal/conv"
	"github.com/slate-ml/slate/internal/parallel"
	"github.com/slate-ml/slate/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Slate %s\n", version)
			return
		case "bench":
			if err := runBench(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "bench: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Slate - CPU Convolution Engine for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  bench      Run a single convolution and report timing")
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	batch := fs.Int("batch", 1, "input batch size")
	inC := fs.Int("in-channels", 64, "input channels")
	outC := fs.Int("out-channels", 64, "output channels")
	inH := fs.Int("height", 56, "input height")
	inW := fs.Int("width", 56, "input width")
	kernel := fs.Int("kernel", 3, "filter size (square)")
	stride := fs.Int("stride", 1, "stride (both axes)")
	iters := fs.Int("iters", 10, "timed iterations")
	workers := fs.Int("workers", runtime.NumCPU(), "worker goroutines")
	klog.InitFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := conv.DefaultParams()
	params.StrideH = *stride
	params.StrideW = *stride
	params.Padding = conv.Padding{Type: conv.PaddingSame}

	op, err := conv.NewOperator(params, cpu.New())
	if err != nil {
		return err
	}
	op.SetParallelism(parallel.Config{
		Enabled:      *workers > 1,
		NumWorkers:   *workers,
		MinChunkSize: 1,
	})

	input := tensor.Full(tensor.Shape{*batch, *inC, *inH, *inW}, 0.5)
	filter := tensor.Full(tensor.Shape{*outC, *inC, *kernel, *kernel}, 0.1)
	output := tensor.Empty(tensor.Float32)

	// Warm up once so scratch allocation and filter transforms are not timed.
	if err := op.Compute(input, filter, nil, output); err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < *iters; i++ {
		if err := op.Compute(input, filter, nil, output); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	perIter := elapsed / time.Duration(*iters)

	outShape := output.Shape()
	macs := int64(outShape.NumElements()) * int64(*inC) * int64(*kernel) * int64(*kernel)
	gflops := 2 * float64(macs) / perIter.Seconds() / 1e9

	fmt.Printf("input  %v  filter %v  stride %d\n", input.Shape(), filter.Shape(), *stride)
	fmt.Printf("output %v\n", outShape)
	fmt.Printf("%d iters, %v/iter, %.2f GFLOP/s\n", *iters, perIter.Round(time.Microsecond), gflops)
	return nil
}
