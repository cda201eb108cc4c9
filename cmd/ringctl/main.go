package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wizenheimer/ring"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := config.Logger()

	app := cli.App{
		Name:        "ringctl",
		Description: "build, mutate and print circular doubly-linked rings",
		Commands: []*cli.Command{{
			Name:        "build",
			Description: "append keys at either end, erase some, and print the result",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "back", Usage: "keys appended at the back, in order"},
				&cli.StringSliceFlag{Name: "front", Usage: "keys appended at the front, in order"},
				&cli.StringSliceFlag{Name: "erase", Usage: "keys erased (first occurrence) after appending"},
				&cli.BoolFlag{Name: "reverse", Usage: "also print the ring backwards"},
			},
			Action: func(ctx *cli.Context) error {
				r := ring.New[string](ring.WithLogger(logger))
				for _, k := range ctx.StringSlice("back") {
					r.Append(k, ring.Back)
				}
				for _, k := range ctx.StringSlice("front") {
					r.Append(k, ring.Front)
				}
				for _, k := range ctx.StringSlice("erase") {
					if !r.Erase(k) {
						logger.Warn("key not in ring", slog.String("key", k))
					}
				}
				return printRing(ctx.App.Writer, r, ctx.Bool("reverse"))
			},
		}, {
			Name:        "run",
			ArgsUsage:   "SCRIPT",
			Description: "run a YAML script of ring operations on a ring of strings",
			Action: func(ctx *cli.Context) error {
				path := ctx.Args().First()
				if path == "" {
					return errors.New("missing required argument: SCRIPT")
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading script: %w", err)
				}
				script, err := ParseScript(data)
				if err != nil {
					return err
				}
				logger.Info("running script",
					slog.String("path", path),
					slog.Int("ops", len(script.Ops)))
				return script.Run(ring.New[string](ring.WithLogger(logger)), ctx.App.Writer, logger)
			},
		}, {
			Name:        "tokens",
			ArgsUsage:   "TEXT...",
			Description: "analyze text into a token ring and print it",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "reverse", Usage: "also print the ring backwards"},
			},
			Action: func(ctx *cli.Context) error {
				text := strings.Join(ctx.Args().Slice(), " ")
				r := ring.NewTokenRing(text, config.Analyzer(), ring.WithLogger(logger))
				logger.Info("built token ring", slog.Int("tokens", r.Len()))
				return printRing(ctx.App.Writer, r, ctx.Bool("reverse"))
			},
		}},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func printRing(w io.Writer, r *ring.Ring[string], reverse bool) error {
	if err := r.Print(w); err != nil {
		return err
	}
	if reverse {
		return r.ReversePrint(w)
	}
	return nil
}
