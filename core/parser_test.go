package core

import (
	"fmt"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventNS = `xmlns="http://schemas.microsoft.com/win/2004/08/events/event"`

func record(t *testing.T, raw string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(raw))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func failedLoginRecord(account, address string) string {
	return fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4625</EventID>
    <TimeCreated SystemTime="2023-11-07T09:14:22.123456700Z"/>
    <Computer>WS01</Computer>
  </System>
  <EventData>
    <Data Name="TargetUserName">%s</Data>
    <Data Name="IpAddress">%s</Data>
  </EventData>
  <RenderingInfo Culture="en-US">
    <Message>An account failed to log on.</Message>
  </RenderingInfo>
</Event>`, eventNS, account, address)
}

func TestParseRecord(t *testing.T) {
	t.Run("Full record", func(t *testing.T) {
		event, err := ParseRecord(record(t, failedLoginRecord("bob", "203.0.113.7")))
		require.NoError(t, err)

		assert.Equal(t, 4625, event.EventID)
		assert.Equal(t, "2023-11-07T09:14:22.123456700Z", event.Timestamp)
		assert.Equal(t, "bob", event.Account)
		assert.Equal(t, "An account failed to log on.", event.Message)
		assert.Equal(t, "203.0.113.7", event.IPAddress)
	})

	t.Run("Missing account defaults to N/A", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>7036</EventID>
    <TimeCreated SystemTime="2023-11-07T10:00:00Z"/>
  </System>
  <EventData>
    <Data Name="param1">Windows Update</Data>
  </EventData>
</Event>`, eventNS)

		event, err := ParseRecord(record(t, raw))
		require.NoError(t, err)
		assert.Equal(t, "N/A", event.Account)
	})

	t.Run("Missing message defaults to empty", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4720</EventID>
    <TimeCreated SystemTime="2023-11-07T10:00:00Z"/>
  </System>
  <EventData>
    <Data Name="TargetUserName">alice</Data>
  </EventData>
</Event>`, eventNS)

		event, err := ParseRecord(record(t, raw))
		require.NoError(t, err)
		assert.Equal(t, "alice", event.Account)
		assert.Equal(t, "", event.Message)
		assert.Equal(t, "", event.IPAddress)
	})

	t.Run("Missing event id", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <TimeCreated SystemTime="2023-11-07T10:00:00Z"/>
  </System>
</Event>`, eventNS)

		_, err := ParseRecord(record(t, raw))
		require.Error(t, err)

		parseErr := (*ParseError)(nil)
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "EventID")
	})

	t.Run("Non numeric event id", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>not-a-number</EventID>
    <TimeCreated SystemTime="2023-11-07T10:00:00Z"/>
  </System>
</Event>`, eventNS)

		_, err := ParseRecord(record(t, raw))
		parseErr := (*ParseError)(nil)
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("Missing time created", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4625</EventID>
  </System>
</Event>`, eventNS)

		_, err := ParseRecord(record(t, raw))
		parseErr := (*ParseError)(nil)
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "TimeCreated")
	})

	t.Run("TimeCreated without SystemTime attribute", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4625</EventID>
    <TimeCreated/>
  </System>
</Event>`, eventNS)

		_, err := ParseRecord(record(t, raw))
		parseErr := (*ParseError)(nil)
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("Timestamp kept verbatim", func(t *testing.T) {
		raw := fmt.Sprintf(`<Event %s>
  <System>
    <EventID>4672</EventID>
    <TimeCreated SystemTime="2023-02-29T99:99:99 not even a date"/>
  </System>
</Event>`, eventNS)

		event, err := ParseRecord(record(t, raw))
		require.NoError(t, err)
		assert.Equal(t, "2023-02-29T99:99:99 not even a date", event.Timestamp)
	})
}
