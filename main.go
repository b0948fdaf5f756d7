package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/api/handlers"
	"github.com/nanaopoku/church-admin-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	zap.S().Infow("church-admin-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
		"storage", a.Config.StorageBackend,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), a.Router))
}
