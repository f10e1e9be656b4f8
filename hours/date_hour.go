package hours

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02 15"
)

var (
	madridLoc   *time.Location
	guiLocation *time.Location = time.UTC
)

func init() {
	var err error
	madridLoc, err = time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(fmt.Sprintf("failed to load Madrid location: %v", err))
	}
}

func SetGuiTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	guiLocation = loc
	return nil
}

// DateHour identifies one UTC hour bucket, the resolution the dashboard
// charts work at.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

func (dh DateHour) LocalizedString() string {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return dh.String()
	}
	localTime := t.In(guiLocation)
	return fmt.Sprintf("%s %02d", localTime.Format(dateLayout), localTime.Hour())
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00Z", dh.Date, dh.Hour)
}

func (dh DateHour) Add(hours int) DateHour {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return dh
	}

	t = t.Add(time.Duration(hours) * time.Hour)
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

func (dh DateHour) Sub(hours int) DateHour {
	return dh.Add(-hours)
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

func (dh DateHour) Time() time.Time {
	t, err := time.ParseInLocation(hourLayout, dh.String(), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func FromTime(t time.Time) DateHour {
	utc := t.UTC()
	return DateHour{
		Date: utc.Format(dateLayout),
		Hour: uint8(utc.Hour()),
	}
}

func FromNow() DateHour {
	return FromTime(time.Now())
}

// FromMidnight returns the first hour of the current day in Madrid time,
// expressed as a UTC bucket. The e·sios day starts at Madrid midnight.
func FromMidnight() DateHour {
	now := time.Now().In(madridLoc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, madridLoc)
	return FromTime(midnight)
}
