package models

// EventLogCapacity is the number of transitions kept in the event log.
const EventLogCapacity = 50

// Event is a single status-transition log entry.
type Event struct {
	TS  float64 `json:"ts"`  // unix seconds, same clock as LatestState.TS
	Msg string  `json:"msg"` // FAULT: <status> | RECOVERED: OK
}
