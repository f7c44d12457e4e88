package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/evtriage/evtriage/models"
)

const defaultAccount = "N/A"

// ParseError marks a record that does not carry the mandatory schema fields.
// Callers can detect it with errors.As and skip the record instead of
// aborting the whole run.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record parse error: %s", e.Reason)
}

// ParseRecord normalizes one raw record into an Event. The event identifier
// and the creation timestamp are mandatory, account and message fall back to
// their defaults when the record does not carry them. The message text and
// the timestamp are passed through untouched.
func ParseRecord(rec *etree.Element) (models.Event, error) {
	event := models.Event{}

	idElem := rec.FindElement("System/EventID")
	if idElem == nil {
		return event, &ParseError{Reason: "missing System/EventID"}
	}

	eventID, err := strconv.Atoi(strings.TrimSpace(idElem.Text()))
	if err != nil {
		return event, &ParseError{Reason: fmt.Sprintf("non numeric EventID '%s'", idElem.Text())}
	}

	timeElem := rec.FindElement("System/TimeCreated")
	if timeElem == nil {
		return event, &ParseError{Reason: "missing System/TimeCreated"}
	}

	systemTime := timeElem.SelectAttrValue("SystemTime", "")
	if systemTime == "" {
		return event, &ParseError{Reason: "TimeCreated without SystemTime attribute"}
	}

	event.EventID = eventID
	event.Timestamp = systemTime
	event.Account = defaultAccount

	if acct := rec.FindElement(".//Data[@Name='TargetUserName']"); acct != nil && acct.Text() != "" {
		event.Account = acct.Text()
	}

	if msg := rec.FindElement(".//RenderingInfo/Message"); msg != nil {
		event.Message = msg.Text()
	}

	if addr := rec.FindElement(".//Data[@Name='IpAddress']"); addr != nil {
		event.IPAddress = strings.TrimSpace(addr.Text())
	}

	return event, nil
}
