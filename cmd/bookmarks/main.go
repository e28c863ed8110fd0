package main

import (
	"log"

	"github.com/patric-chuzhbe/bookmarks/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalln("Application init error:", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalln("Application run error:", err)
	}
}
