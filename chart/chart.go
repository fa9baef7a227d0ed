// Package chart renders a simulation run as a PNG time-series chart.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/capsim"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Options controls the rendered image.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is a size that stays readable for a year of weekly points.
var DefaultOptions = Options{Width: 1280, Height: 720}

// Render draws the run and writes it as PNG. The pot value is plotted per
// week; harvest runs also get the cumulative vault and spend curves.
func Render(r *capsim.Result, opts Options, w io.Writer) error {
	if len(r.Records) < 2 {
		return fmt.Errorf("chart needs at least 2 weeks, got %d", len(r.Records))
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}

	dates := make([]time.Time, len(r.Records))
	pot := make([]float64, len(r.Records))
	vault := make([]float64, len(r.Records))
	spend := make([]float64, len(r.Records))

	var vaultSum, spendSum capsim.Money
	for i, rec := range r.Records {
		vaultSum = vaultSum.Add(rec.VaultDelta)
		spendSum = spendSum.Add(rec.SpendDelta)
		dates[i] = rec.Date.Time()
		pot[i] = rec.PotAfter.Float64()
		vault[i] = vaultSum.Float64()
		spend[i] = spendSum.Float64()
	}

	series := []gochart.Series{
		gochart.TimeSeries{
			Name:    "Pot",
			XValues: dates,
			YValues: pot,
			Style: gochart.Style{
				StrokeColor: gochart.ColorBlue,
				FillColor:   gochart.ColorBlue.WithAlpha(40),
			},
		},
	}
	if r.Strategy == capsim.Harvest {
		series = append(series,
			gochart.TimeSeries{
				Name:    "Vault (cumulative)",
				XValues: dates,
				YValues: vault,
				Style:   gochart.Style{StrokeColor: gochart.ColorGreen},
			},
			gochart.TimeSeries{
				Name:    "Spend (cumulative)",
				XValues: dates,
				YValues: spend,
				Style:   gochart.Style{StrokeColor: gochart.ColorOrange},
			},
		)
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s run, %d weeks", r.Strategy, r.Params.TotalWeeks),
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			ValueFormatter: moneyFormatter(r.Params.Currency()),
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}

// WriteFile renders the run to a PNG file.
func WriteFile(r *capsim.Result, opts Options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Render(r, opts, f)
}

func moneyFormatter(currency string) gochart.ValueFormatter {
	return func(v any) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		return fmt.Sprintf("%.0f %s", f, currency)
	}
}
