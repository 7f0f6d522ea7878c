package main

import (
	"log"

	_ "time/tzdata"

	"github.com/planloop/planloop/cmd/app"
	"github.com/planloop/planloop/internal/adapters/config"
	"github.com/planloop/planloop/internal/adapters/controller/http/setup"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	engine := setup.Setup(a)

	a.Start(engine)
}
