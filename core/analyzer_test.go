package core

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evtriage/evtriage/models"
)

func accountCreatedRecord(account, message string) string {
	return fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4720</EventID>
    <TimeCreated SystemTime="2023-11-07T09:15:01Z"/>
  </System>
  <EventData>
    <Data Name="TargetUserName">%s</Data>
  </EventData>
  <RenderingInfo Culture="en-US">
    <Message>%s</Message>
  </RenderingInfo>
</Event>`, eventNS, account, message)
}

func TestAnalyzerEndToEnd(t *testing.T) {
	records := make([]string, 0, 6)
	for i := 0; i < 5; i++ {
		records = append(records, failedLoginRecord("bob", "203.0.113.7"))
	}
	records = append(records, accountCreatedRecord("alice", "A user account was created."))

	conf := Default()
	conf.Archive = writeArchive(t, records...)

	analyzer := NewAnalyzer(conf)
	require.NoError(t, analyzer.Start())

	report, err := analyzer.Run()
	require.NoError(t, err)

	assert.Equal(t, 6, report.Records)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, report.Alerts, 2)

	first := report.Alerts[0]
	assert.Equal(t, models.MultipleFailedLogins, first.Type)
	assert.Equal(t, "bob", first.Account)
	assert.Equal(t, "5 failed attempts", first.Details)
	assert.Equal(t, "203.0.113.7", first.SourceIP)

	second := report.Alerts[1]
	assert.Equal(t, models.AccountCreated, second.Type)
	assert.Equal(t, "alice", second.Account)
	assert.Equal(t, "A user account was created.", second.Details)
}

func TestAnalyzerSkipsMalformedRecords(t *testing.T) {
	noIDRecord := fmt.Sprintf(`<Event %s>
  <System>
    <TimeCreated SystemTime="2023-11-07T09:00:00Z"/>
  </System>
</Event>`, eventNS)

	conf := Default()
	conf.Archive = writeArchive(t,
		noIDRecord,
		simpleRecord(7036, "2023-11-07T09:01:00Z"),
	)

	analyzer := NewAnalyzer(conf)
	require.NoError(t, analyzer.Start())

	report, err := analyzer.Run()
	require.NoError(t, err)

	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Alerts, 1)
	assert.Equal(t, models.ServiceStopped, report.Alerts[0].Type)
	assert.Equal(t, "N/A", report.Alerts[0].Account)
}

func TestAnalyzerMissingArchive(t *testing.T) {
	conf := Default()
	conf.Archive = filepath.Join(t.TempDir(), "nope.xml")

	analyzer := NewAnalyzer(conf)
	require.NoError(t, analyzer.Start())

	_, err := analyzer.Run()
	assert.Error(t, err)
}

func TestAnalyzerRunThenExport(t *testing.T) {
	conf := Default()
	conf.Archive = writeArchive(t, accountCreatedRecord("mallory", "A user account was created."))
	conf.Report = filepath.Join(t.TempDir(), "report.csv")

	analyzer := NewAnalyzer(conf)
	require.NoError(t, analyzer.Start())

	report, err := analyzer.Run()
	require.NoError(t, err)
	require.Len(t, report.Alerts, 1)

	require.NoError(t, report.SaveCSV(conf.Report))
	assert.FileExists(t, conf.Report)
}
