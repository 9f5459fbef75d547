package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/studyhall/studyhall/internal/types"
)

func TestErrInvalidMessage(t *testing.T) {
	msg := ErrInvalidMessage(7)
	assert.Equal(t, 7, msg.Id, "expected request id to be echoed")
	assert.Equal(t, 400, msg.Response.ResponseCode)

	// unparseable frames have no usable id
	msg = ErrInvalidMessage(-1)
	assert.Zero(t, msg.Id, "expected negative ids to be dropped")
}

func TestMessageDelivered(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	msg := MessageDelivered(types.Message{Id: 1, ChannelId: 5, Content: "hi", CreatedAt: created})

	assert.Equal(t, created, msg.Timestamp, "expected timestamp to come from the stored row")
	assert.Equal(t, "hi", msg.Message.Content)
	assert.Nil(t, msg.Response)
	assert.Nil(t, msg.SendFailed)
}
