// Command pedestriansvis provides a live Gio viewer for the crowd
// simulator.
package main

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/orca-pedestrians/internal/vis"
)

func main() {
	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Pedestrian Crowd Viewer"),
			app.Size(unit.Dp(1200), unit.Dp(900)),
		)

		application := vis.NewApp()
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
