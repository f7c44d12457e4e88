package core

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Rules holds the event identifiers the engine matches and the failed login
// threshold. The defaults are the Security log values, they can be overridden
// from the configuration file for logs that use different identifiers.
type Rules struct {
	FailedLogin          int `yaml:"failed_login"`
	AccountCreated       int `yaml:"account_created"`
	PrivilegeEscalation  int `yaml:"privilege_escalation"`
	ServiceStopped       int `yaml:"service_stopped"`
	FailedLoginThreshold int `yaml:"failed_login_threshold"`
}

func (r Rules) Validate() error {
	if r.FailedLoginThreshold < 1 {
		return fmt.Errorf("failed_login_threshold must be at least 1, got %d", r.FailedLoginThreshold)
	}

	seen := make(map[int]bool)
	for _, id := range []int{r.FailedLogin, r.AccountCreated, r.PrivilegeEscalation, r.ServiceStopped} {
		if seen[id] {
			return fmt.Errorf("duplicate event id %d in rules", id)
		}
		seen[id] = true
	}

	return nil
}

type Database struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	NodeName  string    `yaml:"node"`
	Archive   string    `yaml:"archive"`
	Report    string    `yaml:"report"`
	GeoIP     string    `yaml:"geoip"`
	Rules     Rules     `yaml:"rules"`
	Database  Database  `yaml:"database"`
	Publisher Publisher `yaml:"publisher"`
	Twitter   Twitter   `yaml:"twitter"`
}

// Default returns the configuration used when no file is given: scan the XML
// export of the Security log in the current directory and write the CSV
// report next to it, every optional sink disabled.
func Default() *Config {
	return &Config{
		NodeName: "localhost",
		Archive:  "Security.evtx.xml",
		Report:   "alerts_report.csv",
		Rules: Rules{
			FailedLogin:          4625,
			AccountCreated:       4720,
			PrivilegeEscalation:  4672,
			ServiceStopped:       7036,
			FailedLoginThreshold: 5,
		},
		Database: Database{
			Path: "alerts.db",
		},
	}
}

func Load(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	conf := Default()

	if err = yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	if conf.Archive == "" {
		return nil, fmt.Errorf("empty archive path in %s", filename)
	} else if conf.Report == "" {
		return nil, fmt.Errorf("empty report path in %s", filename)
	}

	if err = conf.Rules.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}
