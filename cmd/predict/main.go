// Command predict estimates car prices from mileages using a model exported
// by cmd/train.
//
//	predict --model model.json 42000 120000
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/abied-ch/ft-linear-regression/export"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "predict:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("predict", flag.ContinueOnError)
	modelPath := flags.String("model", "model.json", "Path of the exported model")
	format := flags.String("format", "", "Model format: json or yaml (default: from the model file extension)")
	explain := flags.Bool("explain", false, "Print the fitted line in km units")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("usage: predict [--model path] mileage...")
	}

	file, err := export.NewFile(*modelPath, *format)
	if err != nil {
		return err
	}
	model, err := file.Import(context.Background())
	if err != nil {
		return err
	}

	if *explain {
		intercept, slope := model.Line()
		fmt.Printf("price = %.4f %+.6f * km\n", intercept, slope)
	}

	for _, arg := range flags.Args() {
		km, err := strconv.ParseFloat(arg, 64)
		if err != nil || km < 0 {
			return fmt.Errorf("invalid mileage %q", arg)
		}
		fmt.Printf("%g km: %.2f\n", km, model.Predict(km))
	}
	return nil
}
