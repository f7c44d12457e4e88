package main

import (
	"flag"

	"github.com/evilsocket/islazy/fs"
	"github.com/evilsocket/islazy/log"

	"github.com/evtriage/evtriage/core"
)

var (
	conf     = (*core.Config)(nil)
	analyzer = (*core.Analyzer)(nil)
)

func main() {
	var err error

	flag.Parse()

	setup()
	defer cleanup()

	if fs.Exists(confFile) {
		if conf, err = core.Load(confFile); err != nil {
			log.Fatal("error loading configuration from %s: %v", confFile, err)
		}
	} else {
		conf = core.Default()
	}

	if archive != "" {
		conf.Archive = archive
	}
	if output != "" {
		conf.Report = output
	}

	analyzer = core.NewAnalyzer(conf)

	log.Info("evtriage starting for node <%s> ...", conf.NodeName)

	if err = analyzer.Start(); err != nil {
		log.Fatal("%v", err)
	}

	report, err := analyzer.Run()
	if err != nil {
		log.Fatal("%v", err)
	}

	report.Display()

	if err = report.SaveCSV(conf.Report); err != nil {
		log.Fatal("error saving report: %v", err)
	}

	analyzer.Report(report)
}
