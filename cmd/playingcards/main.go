package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/playingcards/internal/config"
	"github.com/jask/playingcards/internal/game"
	"github.com/jask/playingcards/internal/supplier"
	"github.com/jask/playingcards/internal/tui"
	"github.com/jask/playingcards/internal/web"
)

const usage = "usage: playingcards [tui|serve|init-config [path]]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cmd := "tui"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "tui":
		runTUI(cfg)
	case "serve":
		runServer(cfg)
	case "init-config":
		path := ""
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		if err := config.Save(cfg, path); err != nil {
			log.Fatalf("save config: %v", err)
		}
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		log.Fatalf("unknown command %q\n%s", cmd, usage)
	}
}

// build assembles the configured game. With at least two piles, clicking the
// table shuttles cards between the first two.
func build(cfg config.Config, s supplier.CardSupplier) *game.Game {
	g, err := game.FromConfig(cfg, s)
	if err != nil {
		log.Fatalf("game: %v", err)
	}
	if piles := g.Piles(); len(piles) >= 2 {
		if _, err := game.NewShuttle(g, piles[0].Name(), piles[1].Name()); err != nil {
			log.Fatalf("shuttle: %v", err)
		}
	}
	return g
}

func runTUI(cfg config.Config) {
	g := build(cfg, supplier.Text{})
	defer g.Close()

	p := tea.NewProgram(tui.New(g, cfg.UI.Scale), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func runServer(cfg config.Config) {
	g := build(cfg, supplier.NewSVGCards(cfg.Cards.SpriteURL))
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := web.New(g, web.Options{
		Width:      cfg.Table.Width,
		Height:     cfg.Table.Height,
		Origins:    cfg.Server.Origins,
		SpriteURL:  cfg.Cards.SpriteURL,
		SpriteFile: cfg.Server.SpriteFile,
	})
	if err := s.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		log.Printf("server: %v", err)
	}
}
