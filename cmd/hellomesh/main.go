package main

import (
	"flag"
	"runtime"

	"github.com/gekko3d/hellomesh"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "hellomesh.yaml", "Path to the YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	cfg, err := hellomesh.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debug
		case "watch":
			cfg.Watch = *watch
		}
	})

	builder := hellomesh.NewAppBuilder().
		UseModule(
			hellomesh.LoggingModule{Prefix: "hellomesh", Debug: cfg.Debug},
			hellomesh.TimeModule{LogFPS: cfg.Debug},
		).
		UseMeshRenderer(cfg)
	if cfg.Watch {
		builder.UseModule(hellomesh.ConfigWatchModule{Path: *configPath, Config: cfg})
	}

	builder.Build().Run()
}
