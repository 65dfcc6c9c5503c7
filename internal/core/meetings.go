package core

import "smartgram/pkg/domain"

const componentMeetings = "meetings"

// MeetingLog is an append-only record of unit meetings.
type MeetingLog struct {
	meetings []domain.MeetingRecord
	logger   Logger
	metrics  MetricsRecorder
}

// NewMeetingLog returns an empty log.
func NewMeetingLog(opts ...Option) *MeetingLog {
	cfg := buildOptions(opts)
	return &MeetingLog{logger: cfg.logger, metrics: cfg.metrics}
}

// Record appends meeting.
func (l *MeetingLog) Record(meeting domain.MeetingRecord) {
	l.metrics.Observe(componentMeetings, "record")
	l.meetings = append(l.meetings, meeting.Clone())
	l.logger.Debug("meeting recorded", "panchayat_id", meeting.UnitID, "date", meeting.Date)
}

// Meetings returns the unit's meetings in the order they were recorded.
func (l *MeetingLog) Meetings(unitID string) []domain.MeetingRecord {
	l.metrics.Observe(componentMeetings, "meetings")
	out := make([]domain.MeetingRecord, 0)
	for _, m := range l.meetings {
		if m.UnitID == unitID {
			out = append(out, m.Clone())
		}
	}
	return out
}

// ActionItems concatenates the action items of every meeting of the unit.
func (l *MeetingLog) ActionItems(unitID string) []string {
	l.metrics.Observe(componentMeetings, "action_items")
	out := make([]string, 0)
	for _, m := range l.meetings {
		if m.UnitID == unitID {
			out = append(out, m.ActionItems...)
		}
	}
	return out
}

// Count returns the number of meetings recorded for the unit.
func (l *MeetingLog) Count(unitID string) int {
	l.metrics.Observe(componentMeetings, "count")
	n := 0
	for _, m := range l.meetings {
		if m.UnitID == unitID {
			n++
		}
	}
	return n
}
