package database

type StudyRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	GetAccountById(accountId int) (User, error)
	GetAccountByEmail(email string) (User, error)
	CreateCommunity(params CreateCommunityParams) (Community, error)
	GetCommunityById(id int) (Community, error)
	GetCommunityByInviteCode(code string) (Community, error)
	ListCommunitiesForUser(userId int) ([]Community, error)
	JoinCommunity(communityId, userId int) (Membership, error)
	GetMembership(communityId, userId int) (Membership, error)
	DeleteMembership(communityId, userId int) error
	CreateChannel(params CreateChannelParams) (Channel, error)
	GetChannelById(id int) (Channel, error)
	ListChannels(communityId int) ([]Channel, error)
	DeleteChannel(id int) error
	CreateMessage(channelId, userId int, content string) (Message, error)
	GetMessages(channelId, limit int) ([]Message, error)
}
