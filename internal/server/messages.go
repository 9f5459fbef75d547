package server

import (
	"net/http"
	"time"

	"github.com/studyhall/studyhall/internal/types"
)

type BaseMessage struct {
	Id        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is the wire format for client operations. Exactly one of
// Subscribe, Unsubscribe or Send is set.
type ClientMessage struct {
	BaseMessage
	Subscribe   *Subscribe   `json:"subscribe,omitempty"`
	Unsubscribe *Unsubscribe `json:"unsubscribe,omitempty"`
	Send        *Send        `json:"send,omitempty"`
	client      *Client
}

type Subscribe struct {
	ChannelId int `json:"channel_id"`
}

type Unsubscribe struct {
	ChannelId int `json:"channel_id"`
}

type Send struct {
	ChannelId int    `json:"channel_id"`
	Content   string `json:"content"`
}

// ServerMessage is the wire format for server events. Message carries a
// delivered chat message to every room subscriber; SendFailed is delivered
// to the sending connection only.
type ServerMessage struct {
	BaseMessage
	Response   *Response      `json:"response,omitempty"`
	Message    *types.Message `json:"message,omitempty"`
	SendFailed *SendFailed    `json:"send_failed,omitempty"`
}

type Response struct {
	ResponseCode int    `json:"response_code"`
	Error        string `json:"error,omitempty"`
}

type SendFailed struct {
	Error string `json:"error"`
}

func NoErrOK(id int) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusOK,
		},
	}
}

func ErrInvalidMessage(id int) *ServerMessage {
	msg := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusBadRequest,
			Error:        "invalid message format",
		},
	}

	if id > 0 {
		msg.Id = id
	}
	return msg
}

func SendFailedMsg(id int, reason string) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		SendFailed: &SendFailed{
			Error: reason,
		},
	}
}

func MessageDelivered(msg types.Message) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: msg.CreatedAt,
		},
		Message: &msg,
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
