package types

import (
	"time"
)

type User struct {
	Id           int       `json:"id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Password     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

type Community struct {
	Id            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	OwnerId       int       `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	InviteCode    string    `json:"invite_code"`
	Role          string    `json:"role,omitempty"`
	MemberCount   int       `json:"member_count,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

type Channel struct {
	Id          int       `json:"id"`
	CommunityId int       `json:"community_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Message struct {
	Id        int       `json:"id"`
	ChannelId int       `json:"channel_id"`
	UserId    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
