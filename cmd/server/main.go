// Command server runs the aspect sentiment analysis demo: an HTML form and a
// JSON API in front of a pretrained multilingual ATEPC model.
//
// Configuration is read from CONFIG_PATH (fallback ./config.yaml) and the
// environment; see internal/config.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/absa-demo/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
