package models

import (
	"time"
)

type AlertType string

const (
	MultipleFailedLogins AlertType = "Multiple Failed Logins"
	AccountCreated       AlertType = "New User Account Created"
	PrivilegeEscalation  AlertType = "Privilege Escalation"
	ServiceStopped       AlertType = "Service Stopped"
)

// Alert is one suspicious condition flagged during a run. Timestamp and
// Account are copied from the triggering event, CountryCode and CountryName
// are only set when a geoip database is configured and the event carried a
// source address.
type Alert struct {
	ID          uint      `gorm:"primary_key" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	AlertID     string    `gorm:"index" json:"id"`
	NodeName    string    `gorm:"index" json:"node_name"`
	Timestamp   string    `gorm:"index" json:"timestamp"`
	Account     string    `gorm:"index" json:"account"`
	Type        AlertType `gorm:"index" json:"type"`
	Details     string    `json:"details"`
	SourceIP    string    `gorm:"index" json:"source_ip"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
}
