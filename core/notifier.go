package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"github.com/evilsocket/islazy/log"

	"github.com/evtriage/evtriage/models"
)

// Twitter posts a one line summary of a run, handy when the scan is part of a
// scheduled job and nobody is watching the console.
type Twitter struct {
	sync.Mutex

	Enabled        bool   `yaml:"enabled"`
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
	AccessKey      string `yaml:"access_key"`
	AccessSecret   string `yaml:"access_secret"`

	client *twitter.Client
}

func (t *Twitter) Init() (err error) {
	if !t.Enabled {
		return nil
	}

	config := oauth1.NewConfig(t.ConsumerKey, t.ConsumerSecret)
	token := oauth1.NewToken(t.AccessKey, t.AccessSecret)
	// http.Client will automatically authorize Requests
	httpClient := config.Client(oauth1.NoContext, token)
	t.client = twitter.NewClient(httpClient)
	return
}

type typeCounter struct {
	Type  models.AlertType
	Count int
}

// Summarize builds the alert type breakdown used for the status update, most
// frequent type first.
func Summarize(alerts []models.Alert) string {
	byType := make(map[models.AlertType]int)
	for _, alert := range alerts {
		byType[alert.Type]++
	}

	counters := make([]typeCounter, 0, len(byType))
	for alertType, count := range byType {
		counters = append(counters, typeCounter{Type: alertType, Count: count})
	}

	sort.Slice(counters, func(i, j int) bool {
		if counters[i].Count == counters[j].Count {
			return counters[i].Type < counters[j].Type
		}
		return counters[i].Count > counters[j].Count
	})

	parts := make([]string, 0, len(counters))
	for _, c := range counters {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Type, c.Count))
	}

	return strings.Join(parts, " ")
}

func (t *Twitter) OnRun(nodeName string, alerts []models.Alert) {
	t.Lock()
	defer t.Unlock()

	if !t.Enabled || len(alerts) == 0 {
		return
	}

	numAlerts := len(alerts)
	plural := "s"
	if numAlerts == 1 {
		plural = ""
	}

	status := fmt.Sprintf("%d alert%s on %s: %s", numAlerts, plural, nodeName, Summarize(alerts))
	if err := t.postUpdate(status); err != nil {
		log.Error("error tweeting: %v", err)
	}
}

func (t *Twitter) postUpdate(status string) error {
	log.Info("tweet> %s", status)
	tweet, _, err := t.client.Statuses.Update(status, nil)
	if err == nil {
		log.Debug("tweet: %+v", tweet)
	}
	return err
}
