package database

import (
	"github.com/stretchr/testify/mock"
)

type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockStudyRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) GetAccountById(accountId int) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) GetAccountByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockStudyRepository) CreateCommunity(params CreateCommunityParams) (Community, error) {
	args := m.Called(params)
	return args.Get(0).(Community), args.Error(1)
}
func (m *MockStudyRepository) GetCommunityById(id int) (Community, error) {
	args := m.Called(id)
	return args.Get(0).(Community), args.Error(1)
}
func (m *MockStudyRepository) GetCommunityByInviteCode(code string) (Community, error) {
	args := m.Called(code)
	return args.Get(0).(Community), args.Error(1)
}
func (m *MockStudyRepository) ListCommunitiesForUser(userId int) ([]Community, error) {
	args := m.Called(userId)
	return args.Get(0).([]Community), args.Error(1)
}
func (m *MockStudyRepository) JoinCommunity(communityId, userId int) (Membership, error) {
	args := m.Called(communityId, userId)
	return args.Get(0).(Membership), args.Error(1)
}
func (m *MockStudyRepository) GetMembership(communityId, userId int) (Membership, error) {
	args := m.Called(communityId, userId)
	return args.Get(0).(Membership), args.Error(1)
}
func (m *MockStudyRepository) DeleteMembership(communityId, userId int) error {
	args := m.Called(communityId, userId)
	return args.Error(0)
}
func (m *MockStudyRepository) CreateChannel(params CreateChannelParams) (Channel, error) {
	args := m.Called(params)
	return args.Get(0).(Channel), args.Error(1)
}
func (m *MockStudyRepository) GetChannelById(id int) (Channel, error) {
	args := m.Called(id)
	return args.Get(0).(Channel), args.Error(1)
}
func (m *MockStudyRepository) ListChannels(communityId int) ([]Channel, error) {
	args := m.Called(communityId)
	return args.Get(0).([]Channel), args.Error(1)
}
func (m *MockStudyRepository) DeleteChannel(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockStudyRepository) CreateMessage(channelId, userId int, content string) (Message, error) {
	args := m.Called(channelId, userId, content)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockStudyRepository) GetMessages(channelId, limit int) ([]Message, error) {
	args := m.Called(channelId, limit)
	return args.Get(0).([]Message), args.Error(1)
}
