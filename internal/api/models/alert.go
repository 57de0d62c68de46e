package models

import (
	"github.com/zoneguard/zoneguard/internal/alert"
)

// Alert is the wire representation of a derived alert.
type Alert struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Zone        string         `json:"zone"`
	Severity    string         `json:"severity"`
	Message     string         `json:"message"`
	Description string         `json:"description,omitempty"`
	Timestamp   Timestamp      `json:"timestamp"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
}

// AcknowledgedAlert is the wire representation of an acknowledgement result.
type AcknowledgedAlert struct {
	Alert          Alert     `json:"alert"`
	AcknowledgedBy string    `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt Timestamp `json:"acknowledgedAt"`
}

// AcknowledgeAlertRequest is the body of an acknowledge call.
type AcknowledgeAlertRequest struct {
	AcknowledgedBy string `json:"acknowledgedBy"`
}

// AlertTypeInfo describes one alert type in the catalogue.
type AlertTypeInfo struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// FromAlert converts a domain alert to its wire form.
func FromAlert(a *alert.Alert) Alert {
	return Alert{
		ID:          a.ID,
		Type:        string(a.Type),
		Zone:        a.Zone.String(),
		Severity:    string(a.Severity),
		Message:     a.Message,
		Description: a.Description,
		Timestamp:   Timestamp(a.Timestamp),
		Status:      string(a.Status),
		Details:     a.Details,
	}
}

// FromAlerts converts an alert list to its wire form.
func FromAlerts(as []*alert.Alert) []Alert {
	out := make([]Alert, 0, len(as))
	for _, a := range as {
		out = append(out, FromAlert(a))
	}
	return out
}

// FromAcknowledgedAlert converts an acknowledgement to its wire form.
func FromAcknowledgedAlert(ack *alert.AcknowledgedAlert) AcknowledgedAlert {
	return AcknowledgedAlert{
		Alert:          FromAlert(&ack.Alert),
		AcknowledgedBy: ack.AcknowledgedBy,
		AcknowledgedAt: Timestamp(ack.AcknowledgedAt),
	}
}

// FromAlertTypes converts the type catalogue to its wire form.
func FromAlertTypes(infos []alert.TypeInfo) []AlertTypeInfo {
	out := make([]AlertTypeInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, AlertTypeInfo{
			Type:        string(info.Type),
			Severity:    string(info.Severity),
			Description: info.Description,
		})
	}
	return out
}
