package main

import (
	"github.com/Kieransaunders/moviezang-core/internal/app"
	"github.com/Kieransaunders/moviezang-core/internal/config"
)

func main() {
	app.Go(config.Load())
}
