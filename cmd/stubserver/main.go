// Command stubserver runs the in-memory backend on a local port, handy
// for exercising the client without the real service.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/msgquota/internal/logging"
	"github.com/dmitrijs2005/msgquota/internal/stubserver"
)

func main() {

	addr := flag.String("a", ":8080", "listen address")
	level := flag.String("l", "debug", "log level")
	flag.Parse()

	logger := logging.NewZerologLogger(os.Stderr, *level, true)

	srv := stubserver.New(stubserver.WithLogger(logger))
	if err := srv.Start(*addr); err != nil {
		log.Fatalf("%v", err)
	}

}
