package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/cexstat/internal/export"
	"github.com/mtlprog/cexstat/internal/render"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a rendered table"},
		&cli.StringFlag{Name: "xlsx", Usage: "also write an Excel workbook to `FILE`"},
	}
}

func portfolioCommand() *cli.Command {
	return &cli.Command{
		Name:  "portfolio",
		Usage: "fetch balances and history, then print the valued portfolio",
		Flags: outputFlags(),
		Action: func(c *cli.Context) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			data, refreshedAt, err := d.tracker.Refresh(c.Context)
			if err != nil {
				return err
			}

			if path := c.String("xlsx"); path != "" {
				if err := writeFile(path, func(w io.Writer) error {
					return export.NewXLSXWriter().WritePortfolio(w, data)
				}); err != nil {
					return err
				}
			}
			if c.Bool("json") {
				return printJSON(data)
			}
			printMarkdown(render.PortfolioMarkdown(data, refreshedAt))
			return nil
		},
	}
}

func holdingCommand() *cli.Command {
	return &cli.Command{
		Name:  "holding",
		Usage: "print the transaction ledger, statistics and DCA summary of one asset",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "asset", Aliases: []string{"a"}, Usage: "asset code, e.g. BTC", Required: true},
		}, outputFlags()...),
		Action: func(c *cli.Context) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			detail, err := d.tracker.Holding(c.Context, c.String("asset"))
			if err != nil {
				return err
			}

			if path := c.String("xlsx"); path != "" {
				if err := writeFile(path, func(w io.Writer) error {
					return export.NewXLSXWriter().WriteDetail(w, detail)
				}); err != nil {
					return err
				}
			}
			if c.Bool("json") {
				return printJSON(detail)
			}
			printMarkdown(render.HoldingMarkdown(detail, d.calc.QuoteAsset()))
			return nil
		},
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return write(f)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMarkdown renders md for the terminal, or prints it raw when rendering fails.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
