package database

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"

	ChannelText  = "text"
	ChannelVoice = "voice"

	// MaxMembers and MaxChannels cap how large a single community can grow.
	MaxMembers  = 10
	MaxChannels = 10

	DefaultTextChannel  = "general"
	DefaultVoiceChannel = "General Voice"
)

type User struct {
	Id           int
	Username     string
	EmailAddress string
	PasswordHash string
	CreatedAt    time.Time
}

type Community struct {
	Id            int
	Name          string
	Description   string
	OwnerId       int
	OwnerUsername string
	InviteCode    string
	Role          string
	MemberCount   int
	CreatedAt     time.Time
}

type Channel struct {
	Id          int
	CommunityId int
	Name        string
	Kind        string
	CreatedAt   time.Time
}

type Membership struct {
	Id          int
	CommunityId int
	UserId      int
	Role        string
	CreatedAt   time.Time
}

type Message struct {
	Id        int
	ChannelId int
	UserId    int
	Username  string
	Content   string
	CreatedAt time.Time
}

type CreateAccountParams struct {
	Username     string
	EmailAddress string
	PasswordHash string
}

type CreateCommunityParams struct {
	Name        string
	Description string
	OwnerId     int
	InviteCode  string
}

type CreateChannelParams struct {
	CommunityId int
	Name        string
	Kind        string
}
