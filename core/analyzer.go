package core

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/evilsocket/islazy/log"
	"github.com/oschwald/geoip2-golang"

	"github.com/evtriage/evtriage/models"
)

// RunReport is the outcome of one full pass over an archive.
type RunReport struct {
	Archive string
	Alerts  []models.Alert
	Records int
	Skipped int
	Elapsed time.Duration
}

// Analyzer wires the record source, the parser and the detection engine
// together for one run and drives the optional sinks afterwards.
type Analyzer struct {
	conf  *Config
	geoip *geoip2.Reader
	store *Store
}

func NewAnalyzer(conf *Config) *Analyzer {
	return &Analyzer{conf: conf}
}

func (a *Analyzer) Start() (err error) {
	if a.conf.GeoIP != "" {
		if a.geoip, err = geoip2.Open(a.conf.GeoIP); err != nil {
			return fmt.Errorf("error opening geoip database %s: %v", a.conf.GeoIP, err)
		}
	}

	if a.conf.Database.Enabled {
		if a.store, err = OpenStore(a.conf.Database.Path); err != nil {
			return err
		}
	}

	if err = a.conf.Publisher.Init(); err != nil {
		return err
	}

	if err = a.conf.Twitter.Init(); err != nil {
		return err
	}

	return nil
}

func (a *Analyzer) enrich(alerts []models.Alert) {
	if a.geoip == nil {
		return
	}

	for i, alert := range alerts {
		if alert.SourceIP == "" {
			continue
		}

		ip := net.ParseIP(alert.SourceIP)
		if ip == nil {
			continue
		}

		country, err := a.geoip.Country(ip)
		if err != nil {
			log.Debug("no geoip match for %s: %v", alert.SourceIP, err)
			continue
		}

		alert.CountryCode = country.Country.IsoCode
		alert.CountryName = country.Country.Names["en"]
		alerts[i] = alert
	}
}

// Run performs the single sequential pass over the archive: source -> parser
// -> engine. Records that fail schema extraction are skipped and counted
// instead of aborting the run, only an unreadable archive is fatal. Order
// matters, the failed login counter depends on how many failures were seen
// before the current record.
func (a *Analyzer) Run() (*RunReport, error) {
	started := time.Now()

	source, err := OpenArchive(a.conf.Archive)
	if err != nil {
		return nil, err
	}

	log.Info("scanning %s (%d records) ...", a.conf.Archive, source.Count())

	engine := NewEngine(a.conf.Rules)
	report := &RunReport{Archive: a.conf.Archive}

	for {
		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		report.Records++

		event, err := ParseRecord(rec)
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			report.Skipped++
			log.Warning("skipping record %d: %v", report.Records, err)
			continue
		} else if err != nil {
			return nil, err
		}

		engine.Process(event)
	}

	report.Alerts = engine.Alerts()
	a.enrich(report.Alerts)
	report.Elapsed = time.Since(started)

	log.Info("%d records scanned in %s: %d alerts, %d skipped",
		report.Records, report.Elapsed, len(report.Alerts), report.Skipped)

	return report, nil
}

// Report drives the optional sinks for a finished run.
func (a *Analyzer) Report(rep *RunReport) {
	if len(rep.Alerts) == 0 {
		return
	}

	for i := range rep.Alerts {
		rep.Alerts[i].NodeName = a.conf.NodeName
	}

	if a.store != nil {
		if err := a.store.SaveAlerts(rep.Alerts); err != nil {
			log.Error("error saving alerts: %v", err)
		}
	}

	if url, err := a.conf.Publisher.OnReport(a.conf.Report); err != nil {
		log.Error("%v", err)
	} else if url != "" {
		log.Info("report published to %s", url)
	}

	a.conf.Twitter.OnRun(a.conf.NodeName, rep.Alerts)
}
