package core

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/evilsocket/islazy/log"
	"github.com/evilsocket/islazy/tui"
)

var reportColumns = []string{"Timestamp", "Account", "Type", "Details"}

func (r *RunReport) rows() [][]string {
	rows := make([][]string, 0, len(r.Alerts))
	for _, alert := range r.Alerts {
		details := alert.Details
		if alert.CountryName != "" {
			details = fmt.Sprintf("%s (from %s)", details, alert.CountryName)
		}
		rows = append(rows, []string{alert.Timestamp, alert.Account, string(alert.Type), details})
	}
	return rows
}

// Display renders the alert table, or a notice when the run found nothing.
func (r *RunReport) Display() {
	if len(r.Alerts) == 0 {
		fmt.Println(tui.Green("no suspicious events detected"))
	} else {
		tui.Table(os.Stdout, reportColumns, r.rows())
	}

	if r.Skipped > 0 {
		fmt.Println(tui.Yellow(fmt.Sprintf("%d malformed records skipped", r.Skipped)))
	}
}

// SaveCSV exports the alert sequence, one row per alert in trigger order.
// Nothing is written when the run produced no alerts.
func (r *RunReport) SaveCSV(filename string) error {
	if len(r.Alerts) == 0 {
		return nil
	}

	fp, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %s: %v", filename, err)
	}
	defer fp.Close()

	writer := csv.NewWriter(fp)

	if err = writer.Write(reportColumns); err != nil {
		return err
	}

	for _, alert := range r.Alerts {
		row := []string{alert.Timestamp, alert.Account, string(alert.Type), alert.Details}
		if err = writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return err
	}

	log.Info("alerts saved to %s", filename)
	return nil
}
