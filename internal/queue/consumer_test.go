package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []NotificationJob
}

func (m *recordingMailer) Send(job NotificationJob) error {
	m.sent = append(m.sent, job)
	return nil
}

func TestHandleDeliverySendsJob(t *testing.T) {
	job := NotificationJob{
		ReservationID:   7,
		ReservationCode: "abc123",
		Subject:         "Your reservation has been confirmed",
		Body:            "Hello",
		Recipients:      []string{"guest@example.com"},
	}
	body, err := json.Marshal(job)
	require.NoError(t, err)

	m := &recordingMailer{}
	handleDelivery(body, m)

	require.Len(t, m.sent, 1)
	assert.Equal(t, job, m.sent[0])
}

func TestHandleDeliveryDropsMalformedJob(t *testing.T) {
	m := &recordingMailer{}
	handleDelivery([]byte("not json"), m)
	assert.Empty(t, m.sent)
}
