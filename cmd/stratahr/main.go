// cmd/stratahr/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stratahr/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintf(os.Stderr, "stratahr: %v\n", err)
		os.Exit(1)
	}
}
