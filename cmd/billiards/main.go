package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/playcue/billiards/internal/config"
	"github.com/playcue/billiards/internal/game"
	"github.com/playcue/billiards/internal/render"
)

func main() {
	cfg := config.Load()

	renderer := render.New()
	session := game.NewSession(game.ParamsFromConfig(cfg), renderer)
	renderer.SetSession(session)

	if err := session.Init(); err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}
	defer session.Deinit()

	w, h := renderer.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Billiards")

	if err := ebiten.RunGame(renderer); err != nil {
		log.Fatal(err)
	}
}
