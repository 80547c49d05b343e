// Command pmc is the private-markets console: it records commitments,
// capital calls, distributions and valuations in a ledger file, and
// forecasts the cash flows they imply.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pacing/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// When invoked by the shell completion protocol this prints candidates
	// and exits; otherwise it is a no-op.
	completion().Complete("pmc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command tree to the shell.
func completion() *complete.Command {
	scenarios := predict.Set{"base", "bull", "bear"}
	periods := predict.Set{"month", "quarter", "year"}
	flowTypes := predict.Set{"capital-call", "contribution", "fees", "distribution", "yield", "return-of-principal"}

	flow := &complete.Command{Flags: map[string]complete.Predictor{
		"i": predict.Something,
		"a": predict.Something,
		"c": predict.Nothing,
		"d": predict.Nothing,
		"m": predict.Nothing,
	}}
	ranged := &complete.Command{Flags: map[string]complete.Predictor{
		"p": periods,
		"s": predict.Nothing,
		"d": predict.Nothing,
	}}

	return &complete.Command{
		Flags: map[string]complete.Predictor{"l": predict.Files("*.jsonl")},
		Sub: map[string]*complete.Command{
			"declare": {Flags: map[string]complete.Predictor{
				"id":            predict.Something,
				"name":          predict.Something,
				"a":             predict.Something,
				"c":             predict.Nothing,
				"vintage":       predict.Something,
				"period":        predict.Something,
				"life":          predict.Something,
				"irr":           predict.Something,
				"moic":          predict.Something,
				"calls":         predict.Set{"front-loaded", "steady", "back-loaded"},
				"distributions": predict.Set{"early", "steady", "backend"},
				"bow":           predict.Something,
				"d":             predict.Nothing,
				"m":             predict.Nothing,
			}},
			"call":       flow,
			"contribute": flow,
			"fees":       flow,
			"distribute": flow,
			"yield":      flow,
			"return":     flow,
			"value":      flow,
			"expect": {Flags: map[string]complete.Predictor{
				"i": predict.Something,
				"a": predict.Something,
				"t": flowTypes,
				"c": predict.Nothing,
				"d": predict.Nothing,
				"m": predict.Nothing,
			}},
			"tx":          ranged,
			"investments": {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"review":      ranged,
			"project": {Flags: map[string]complete.Predictor{
				"i":        predict.Something,
				"scenario": scenarios,
				"horizon":  predict.Something,
				"d":        predict.Nothing,
			}},
			"forecast": {Flags: map[string]complete.Predictor{
				"p":        periods,
				"s":        predict.Nothing,
				"d":        predict.Nothing,
				"i":        predict.Something,
				"scenario": scenarios,
				"stale":    predict.Set{"drop", "keep"},
			}},
			"calendar": {Flags: map[string]complete.Predictor{
				"p":        periods,
				"d":        predict.Nothing,
				"scenario": scenarios,
			}},
			"liquidity": {Flags: map[string]complete.Predictor{
				"cash":     predict.Something,
				"c":        predict.Nothing,
				"horizon":  predict.Something,
				"scenario": scenarios,
				"d":        predict.Nothing,
			}},
			"fmt":   {},
			"topic": {Args: predict.Set{"readme", "pacing", "scenarios", "liquidity", "ledger", "*"}},
		},
	}
}
