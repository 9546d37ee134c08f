package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// @title Template Service API
// @version 1.0
// @description CRUD API over stored templates.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
