package main

import (
	"flag"

	"github.com/crowdkit/crowdkit/internal/admin/bootstrap"
)

var confDir string

func init() {
	flag.StringVar(&confDir, "conf", "conf.d", "conf dir path, e.g. -conf ./conf.d")
}

func main() {
	flag.Parse()

	app, cleanup, err := bootstrap.Bootstrap(confDir, initApp)
	if err != nil {
		panic(err)
	}

	bootstrap.Run(app, cleanup)
}
