package config

import (
	"log"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// LoadEnv loads variables from a .env file if one exists. Missing files are
// fine; in deployed environments everything comes from the real environment.
func LoadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	})
}
