package main

import (
	"flag"

	"github.com/evilsocket/islazy/log"
)

var (
	debug    = false
	confFile = "config.yml"
	archive  = ""
	output   = ""
)

func init() {
	flag.BoolVar(&debug, "debug", debug, "Enable debug logs.")
	flag.StringVar(&log.Output, "log", log.Output, "Log file path or empty for standard output.")
	flag.StringVar(&confFile, "config", confFile, "Configuration file.")
	flag.StringVar(&archive, "archive", archive, "Event archive to scan, overrides the configuration.")
	flag.StringVar(&output, "output", output, "CSV report file, overrides the configuration.")
}

func setup() {
	if debug {
		log.Level = log.DEBUG
	} else {
		log.Level = log.INFO
	}
	log.OnFatal = log.ExitOnFatal
}

func cleanup() {

}
