package main

import (
	"flag"
	"fmt"
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/bot"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var games = flag.Int("games", 2000, "number of games to simulate")
var bullets = flag.Int("bullets", 1, "bullets per pull, 1 to 3")
var seed = flag.Int64("seed", 0, "seed for a reproducible run, 0 uses crypto/rand")

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}

	var g rng.Generator = rng.Crypto{}
	if *seed != 0 {
		g = rng.Seeded(*seed)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	pterm.DefaultHeader.Println("Hold'em & Shot simulator")
	pterm.Info.Printfln("%d games, %d bullet(s), heuristic vs stand-pat", *games, *bullets)

	bar, _ := pterm.DefaultProgressbar.WithTotal(*games).WithTitle("Simulating").Start()
	t, err := simulate(logger, g, *games, *bullets, bot.NewHeuristic(), standPat{}, func() {
		bar.Increment()
	})

	_, _ = bar.Stop()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	render(t)
}

func render(t *tally) {
	_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Strategy", "Wins", "Share"},
		{"heuristic", fmt.Sprint(t.Wins[0]), percent(t.Wins[0], t.Games)},
		{"stand-pat", fmt.Sprint(t.Wins[1]), percent(t.Wins[1], t.Games)},
	}).Render()

	pterm.Println()

	data := pterm.TableData{{"Bullets", "Pulls", "Fired", "Observed", "Expected"}}
	for b := 1; b <= 6; b++ {
		if t.Pulls[b] == 0 {
			continue
		}

		data = append(data, []string{
			fmt.Sprint(b),
			fmt.Sprint(t.Pulls[b]),
			fmt.Sprint(t.Fired[b]),
			fmt.Sprintf("%.3f", t.FireRate(b)),
			fmt.Sprintf("%.3f", float64(b)/6),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Println()
	pterm.Info.Printfln("average rounds %.2f, longest %d", t.AverageRounds(), t.LongestGame)
	pterm.Info.Printfln("showdowns %d, draws %d, joker exemptions %d", t.Showdowns, t.Draws, t.Exemptions)
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}

	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
