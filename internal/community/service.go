package community

import (
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/studyhall/studyhall/internal/database"
	"github.com/studyhall/studyhall/internal/types"
)

// maxInviteCodeAttempts bounds retries when a generated invite code
// collides with an existing one.
const maxInviteCodeAttempts = 5

const defaultMessageWindow = 50

// Service orchestrates the community, channel and membership lifecycle over
// the store, enforcing capacity, ownership and naming invariants. All
// failures are returned as *Error.
type Service struct {
	log *log.Logger
	db  database.StudyRepository
}

func NewService(logger *log.Logger, db database.StudyRepository) *Service {
	return &Service{
		log: logger,
		db:  db,
	}
}

// CreateCommunity creates a community with its two default channels and the
// owner membership. The three inserts commit or roll back together.
func (s *Service) CreateCommunity(name, description string, ownerId int) (types.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Community{}, validationError("community name is required")
	}

	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return types.Community{}, unexpectedError("failed to generate invite code", err)
		}

		c, err := s.db.CreateCommunity(database.CreateCommunityParams{
			Name:        name,
			Description: description,
			OwnerId:     ownerId,
			InviteCode:  code,
		})
		if errors.Is(err, database.ErrInviteCodeTaken) {
			s.log.Printf("invite code collision, regenerating (attempt %d)", attempt+1)
			continue
		}
		if err != nil {
			return types.Community{}, unexpectedError("failed to create community", err)
		}

		return communityToType(c), nil
	}

	return types.Community{}, unexpectedError("failed to create community", database.ErrInviteCodeTaken)
}

// ListForUser returns every community the user is a member of, newest first,
// annotated with the owner's username, the user's role and the member count.
func (s *Service) ListForUser(userId int) ([]types.Community, error) {
	dbCommunities, err := s.db.ListCommunitiesForUser(userId)
	if err != nil {
		return nil, unexpectedError("failed to list communities", err)
	}

	communities := make([]types.Community, 0, len(dbCommunities))
	for _, c := range dbCommunities {
		communities = append(communities, communityToType(c))
	}

	return communities, nil
}

// GetDetails returns the community, its ordered channel list and the
// caller's role. Callers without a membership are rejected.
func (s *Service) GetDetails(communityId, userId int) (types.Community, []types.Channel, error) {
	membership, err := s.db.GetMembership(communityId, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Community{}, nil, forbiddenError("you are not a member of this community")
		}
		return types.Community{}, nil, unexpectedError("failed to check membership", err)
	}

	dbCommunity, err := s.db.GetCommunityById(communityId)
	if err != nil {
		// a membership without a community row is a dangling reference
		if errors.Is(err, sql.ErrNoRows) {
			return types.Community{}, nil, notFoundError("community not found")
		}
		return types.Community{}, nil, unexpectedError("failed to fetch community", err)
	}

	dbChannels, err := s.db.ListChannels(communityId)
	if err != nil {
		return types.Community{}, nil, unexpectedError("failed to fetch channels", err)
	}

	channels := make([]types.Channel, 0, len(dbChannels))
	for _, ch := range dbChannels {
		channels = append(channels, channelToType(ch))
	}

	c := communityToType(dbCommunity)
	c.Role = membership.Role

	return c, channels, nil
}

// Join adds the caller as a member of the community matching the invite
// code. The capacity check and insert run atomically in the store.
func (s *Service) Join(inviteCode string, userId int) (types.Community, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return types.Community{}, validationError("invite code is required")
	}

	c, err := s.db.GetCommunityByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Community{}, notFoundError("invalid invite code")
		}
		return types.Community{}, unexpectedError("failed to look up invite code", err)
	}

	membership, err := s.db.JoinCommunity(c.Id, userId)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrAlreadyMember):
			return types.Community{}, conflictError("you are already a member of this community")
		case errors.Is(err, database.ErrCommunityFull):
			return types.Community{}, capacityError("community is full")
		case errors.Is(err, sql.ErrNoRows):
			return types.Community{}, notFoundError("community not found")
		default:
			return types.Community{}, unexpectedError("failed to join community", err)
		}
	}

	joined, err := s.db.GetCommunityById(c.Id)
	if err != nil {
		return types.Community{}, unexpectedError("failed to fetch community", err)
	}

	result := communityToType(joined)
	result.Role = membership.Role

	return result, nil
}

// CreateChannel adds a channel to the community. Only the owner may create
// channels; text channel names are stored lower-cased and names must be
// case-insensitively unique within the community.
func (s *Service) CreateChannel(communityId int, name, kind string, requesterId int) (types.Channel, error) {
	if kind != database.ChannelText && kind != database.ChannelVoice {
		return types.Channel{}, validationError("channel type must be text or voice")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return types.Channel{}, validationError("channel name is required")
	}
	if kind == database.ChannelText {
		name = strings.ToLower(name)
	}

	c, err := s.db.GetCommunityById(communityId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Channel{}, notFoundError("community not found")
		}
		return types.Channel{}, unexpectedError("failed to fetch community", err)
	}

	if c.OwnerId != requesterId {
		return types.Channel{}, forbiddenError("only the community owner can create channels")
	}

	channel, err := s.db.CreateChannel(database.CreateChannelParams{
		CommunityId: communityId,
		Name:        name,
		Kind:        kind,
	})
	if err != nil {
		switch {
		case errors.Is(err, database.ErrChannelLimit):
			return types.Channel{}, capacityError("community has reached the channel limit")
		case errors.Is(err, database.ErrDuplicateChannel):
			return types.Channel{}, conflictError("a channel with this name already exists")
		case errors.Is(err, sql.ErrNoRows):
			return types.Channel{}, notFoundError("community not found")
		default:
			return types.Channel{}, unexpectedError("failed to create channel", err)
		}
	}

	return channelToType(channel), nil
}

// DeleteChannel removes a channel. Only the owner may delete channels, and
// the default channels created with the community are permanent.
func (s *Service) DeleteChannel(communityId, channelId, requesterId int) error {
	c, err := s.db.GetCommunityById(communityId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundError("community not found")
		}
		return unexpectedError("failed to fetch community", err)
	}

	if c.OwnerId != requesterId {
		return forbiddenError("only the community owner can delete channels")
	}

	channel, err := s.db.GetChannelById(channelId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundError("channel not found")
		}
		return unexpectedError("failed to fetch channel", err)
	}

	if channel.CommunityId != communityId {
		return notFoundError("channel not found")
	}

	if isDefaultChannel(channel.Name) {
		return validationError("default channels cannot be deleted")
	}

	if err := s.db.DeleteChannel(channelId); err != nil {
		return unexpectedError("failed to delete channel", err)
	}

	return nil
}

// Leave removes the caller's membership. The owner may not leave their own
// community.
func (s *Service) Leave(communityId, userId int) error {
	membership, err := s.db.GetMembership(communityId, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return validationError("you are not a member of this community")
		}
		return unexpectedError("failed to check membership", err)
	}

	if membership.Role == database.RoleOwner {
		return validationError("the owner cannot leave their own community")
	}

	if err := s.db.DeleteMembership(communityId, userId); err != nil {
		return unexpectedError("failed to leave community", err)
	}

	return nil
}

// ChannelMessages returns the most recent messages in a channel, oldest
// first, for community members only.
func (s *Service) ChannelMessages(communityId, channelId, userId int) ([]types.Message, error) {
	if _, err := s.db.GetMembership(communityId, userId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, forbiddenError("you are not a member of this community")
		}
		return nil, unexpectedError("failed to check membership", err)
	}

	channel, err := s.db.GetChannelById(channelId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError("channel not found")
		}
		return nil, unexpectedError("failed to fetch channel", err)
	}

	if channel.CommunityId != communityId {
		return nil, notFoundError("channel not found")
	}

	dbMessages, err := s.db.GetMessages(channelId, defaultMessageWindow)
	if err != nil {
		return nil, unexpectedError("failed to fetch messages", err)
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, m := range dbMessages {
		messages = append(messages, messageToType(m))
	}

	return messages, nil
}

// SaveMessage persists a chat message and returns the stored row.
func (s *Service) SaveMessage(channelId, userId int, content string) (types.Message, error) {
	if strings.TrimSpace(content) == "" {
		return types.Message{}, validationError("message content is required")
	}

	msg, err := s.db.CreateMessage(channelId, userId, content)
	if err != nil {
		return types.Message{}, unexpectedError("failed to save message", err)
	}

	return messageToType(msg), nil
}

// isDefaultChannel matches the two channels created with every community,
// which can never be deleted.
func isDefaultChannel(name string) bool {
	switch strings.ToLower(name) {
	case "general", "general voice":
		return true
	}
	return false
}

func communityToType(c database.Community) types.Community {
	return types.Community{
		Id:            c.Id,
		Name:          c.Name,
		Description:   c.Description,
		OwnerId:       c.OwnerId,
		OwnerUsername: c.OwnerUsername,
		InviteCode:    c.InviteCode,
		Role:          c.Role,
		MemberCount:   c.MemberCount,
		CreatedAt:     c.CreatedAt,
	}
}

func channelToType(ch database.Channel) types.Channel {
	return types.Channel{
		Id:          ch.Id,
		CommunityId: ch.CommunityId,
		Name:        ch.Name,
		Kind:        ch.Kind,
		CreatedAt:   ch.CreatedAt,
	}
}

func messageToType(m database.Message) types.Message {
	return types.Message{
		Id:        m.Id,
		ChannelId: m.ChannelId,
		UserId:    m.UserId,
		Username:  m.Username,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
