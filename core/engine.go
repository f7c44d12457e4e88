package core

import (
	"fmt"

	"github.com/teris-io/shortid"

	"github.com/evtriage/evtriage/models"
)

// Engine evaluates the detection rules over a sequential stream of events. It
// owns the per account failed login counters and the append only alert
// sequence for one run, nothing is shared between runs and counters are never
// reset or decremented.
type Engine struct {
	rules  Rules
	failed map[string]int
	alerts []models.Alert
}

func NewEngine(rules Rules) *Engine {
	return &Engine{
		rules:  rules,
		failed: make(map[string]int),
		alerts: make([]models.Alert, 0),
	}
}

func (e *Engine) newAlert(ev models.Event, alertType models.AlertType, details string) models.Alert {
	return models.Alert{
		AlertID:   shortid.MustGenerate(),
		Timestamp: ev.Timestamp,
		Account:   ev.Account,
		Type:      alertType,
		Details:   details,
		SourceIP:  ev.IPAddress,
	}
}

// Process evaluates one event and returns the alerts it produced, already
// appended to the run sequence. Once an account crosses the failed login
// threshold every further failure emits another alert with the updated
// cumulative count, the rule keeps firing on purpose.
func (e *Engine) Process(ev models.Event) []models.Alert {
	var emitted []models.Alert

	switch ev.EventID {
	case e.rules.FailedLogin:
		e.failed[ev.Account]++
		if count := e.failed[ev.Account]; count >= e.rules.FailedLoginThreshold {
			emitted = append(emitted, e.newAlert(ev, models.MultipleFailedLogins,
				fmt.Sprintf("%d failed attempts", count)))
		}

	case e.rules.AccountCreated:
		emitted = append(emitted, e.newAlert(ev, models.AccountCreated, ev.Message))

	case e.rules.PrivilegeEscalation:
		emitted = append(emitted, e.newAlert(ev, models.PrivilegeEscalation, ev.Message))

	case e.rules.ServiceStopped:
		emitted = append(emitted, e.newAlert(ev, models.ServiceStopped, ev.Message))
	}

	e.alerts = append(e.alerts, emitted...)
	return emitted
}

// Alerts returns the alerts accumulated so far, in trigger order.
func (e *Engine) Alerts() []models.Alert {
	return e.alerts
}

// FailedCount returns the running failed login count for an account.
func (e *Engine) FailedCount(account string) int {
	return e.failed[account]
}
