package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskAppointmentReminder = "appointments.reminder"

// AppointmentReminderPayload carries everything the worker needs to send
// the reminder, so the worker holds no lead storage of its own.
type AppointmentReminderPayload struct {
	LeadID      string    `json:"leadId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Start       time.Time `json:"start"`
	MeetingLink string    `json:"meetingLink"`
}

func NewAppointmentReminderTask(payload AppointmentReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAppointmentReminder, data, asynq.MaxRetry(3)), nil
}

func ParseAppointmentReminderPayload(task *asynq.Task) (AppointmentReminderPayload, error) {
	var payload AppointmentReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AppointmentReminderPayload{}, err
	}
	return payload, nil
}
