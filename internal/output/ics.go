package output

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

const (
	icsProdID  = "-//lifeclock//Life Clock//EN"
	icsCalName = "Life Clock"
	icsDomain  = "lifeclock"

	propVersion      = "VERSION"
	propProdID       = "PRODID"
	propCalName      = "X-WR-CALNAME"
	propCalScale     = "CALSCALE"
	propMethod       = "METHOD"
	propUID          = "UID"
	propDTStamp      = "DTSTAMP"
	propSummary      = "SUMMARY"
	propDTStart      = "DTSTART"
	propTransparency = "TRANSP"
)

// ErrNoEvents is returned by the ICS formatter for a report without events.
var ErrNoEvents = errors.New("report has no calendar events")

// ICSFormatter exports the report's events as an all-day iCalendar feed.
type ICSFormatter struct{}

func (ICSFormatter) Name() string { return "ics" }

func (ICSFormatter) Format(r *Report) ([]byte, error) {
	if len(r.Events) == 0 {
		return nil, ErrNoEvents
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, "2.0")
	cal.Props.SetText(propProdID, icsProdID)
	cal.Props.SetText(propCalName, icsCalName)
	cal.Props.SetText(propCalScale, "GREGORIAN")
	cal.Props.SetText(propMethod, "PUBLISH")

	stamp := r.Generated
	if stamp.IsZero() {
		stamp = time.Now()
	}
	dtStamp := ical.NewProp(propDTStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for _, e := range r.Events {
		event := ical.NewEvent()
		event.Props.SetText(propUID, fmt.Sprintf("%s@%s", e.UID, icsDomain))
		event.Props.Set(dtStamp)
		event.Props.SetText(propSummary, e.Summary)

		start := ical.NewProp(propDTStart)
		start.SetDate(e.Date)
		event.Props.Set(start)
		event.Props.SetText(propTransparency, "TRANSPARENT")

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar data: %w", err)
	}
	return buf.Bytes(), nil
}
