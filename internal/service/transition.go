package service

import "telemetry_demo/internal/models"

const (
	faultMsgPrefix = "FAULT: "
	recoveredMsg   = "RECOVERED: OK"
)

// Transition decides whether moving from last to next is worth logging.
// It returns the status to remember and, when the status changed, the entry to append.
func Transition(last, next string, ts float64) (string, *models.Event) {
	if next == last {
		return last, nil
	}
	msg := recoveredMsg
	if next != models.StatusOK {
		msg = faultMsgPrefix + next
	}
	return next, &models.Event{TS: ts, Msg: msg}
}
