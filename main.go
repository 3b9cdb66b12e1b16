package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/logicgates/common"
)

func main() {
	debug := flag.Bool("debug", false, "log interaction transitions and draw collider debug overlays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "puzzle", "level name in levels/ (basename, .json optional)")
	variant := flag.Int("variant", 1, "level variant to start on (1 or 2)")
	watch := flag.Bool("watch", false, "reload the level when files in prefabs/ or levels/ change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("logic gates")

	game, err := NewGame(Options{
		Level:   *levelName,
		Variant: *variant,
		Debug:   *debug,
		Watch:   *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
