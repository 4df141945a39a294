package database

import (
	"github.com/stretchr/testify/mock"

	"communityapp-backend/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) CreateUser(u models.User) error {
	args := m.Called(u)
	return args.Error(0)
}
func (m *MockStore) GetUserByID(id int64) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *MockStore) GetUserByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *MockStore) UserExists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}
func (m *MockStore) UpdateUserProfile(id int64, displayName, bio, theme string) error {
	args := m.Called(id, displayName, bio, theme)
	return args.Error(0)
}
func (m *MockStore) DeleteUser(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) CreateFriendRequest(targetID, requesterID int64) error {
	args := m.Called(targetID, requesterID)
	return args.Error(0)
}
func (m *MockStore) DeleteFriendRequest(targetID, requesterID int64) error {
	args := m.Called(targetID, requesterID)
	return args.Error(0)
}
func (m *MockStore) FriendRequestExists(targetID, requesterID int64) (bool, error) {
	args := m.Called(targetID, requesterID)
	return args.Bool(0), args.Error(1)
}
func (m *MockStore) ListFriendRequests(targetID int64) ([]models.User, error) {
	args := m.Called(targetID)
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *MockStore) DeleteFriendRequestsFor(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStore) AreFriends(userAID, userBID int64) (bool, error) {
	args := m.Called(userAID, userBID)
	return args.Bool(0), args.Error(1)
}
func (m *MockStore) ListFriends(userID int64) ([]models.User, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *MockStore) ListFriendIDs(userID int64) ([]int64, error) {
	args := m.Called(userID)
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockStore) CreateFriendship(userAID, userBID, conversationID int64) error {
	args := m.Called(userAID, userBID, conversationID)
	return args.Error(0)
}
func (m *MockStore) DeleteFriendship(userAID, userBID int64) error {
	args := m.Called(userAID, userBID)
	return args.Error(0)
}

func (m *MockStore) GetConversation(userAID, userBID int64) (models.Conversation, error) {
	args := m.Called(userAID, userBID)
	return args.Get(0).(models.Conversation), args.Error(1)
}
func (m *MockStore) ListConversationMessages(conversationID int64) ([]models.PrivateMessage, error) {
	args := m.Called(conversationID)
	return args.Get(0).([]models.PrivateMessage), args.Error(1)
}
func (m *MockStore) CreatePrivateMessage(pm models.PrivateMessage) error {
	args := m.Called(pm)
	return args.Error(0)
}
func (m *MockStore) DeleteConversationsFor(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStore) CreateServer(server models.Server, general models.Channel) error {
	args := m.Called(server, general)
	return args.Error(0)
}
func (m *MockStore) GetServer(id int64) (models.Server, error) {
	args := m.Called(id)
	return args.Get(0).(models.Server), args.Error(1)
}
func (m *MockStore) RenameServer(id int64, name string) error {
	args := m.Called(id, name)
	return args.Error(0)
}
func (m *MockStore) DeleteServer(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockStore) ListServersForUser(userID int64) ([]models.Server, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Server), args.Error(1)
}
func (m *MockStore) AddServerMember(serverID, userID int64, permissionLevel int) error {
	args := m.Called(serverID, userID, permissionLevel)
	return args.Error(0)
}
func (m *MockStore) RemoveServerMember(serverID, userID int64) error {
	args := m.Called(serverID, userID)
	return args.Error(0)
}
func (m *MockStore) ListServerMembers(serverID int64) ([]models.ServerMember, error) {
	args := m.Called(serverID)
	return args.Get(0).([]models.ServerMember), args.Error(1)
}

func (m *MockStore) CreateChannel(ch models.Channel) error {
	args := m.Called(ch)
	return args.Error(0)
}
func (m *MockStore) GetChannel(id int64) (models.Channel, error) {
	args := m.Called(id)
	return args.Get(0).(models.Channel), args.Error(1)
}
func (m *MockStore) ListChannels(serverID int64) ([]models.Channel, error) {
	args := m.Called(serverID)
	return args.Get(0).([]models.Channel), args.Error(1)
}
func (m *MockStore) DeleteChannel(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) CreateMessage(msg models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}
func (m *MockStore) GetMessage(id int64) (models.Message, error) {
	args := m.Called(id)
	return args.Get(0).(models.Message), args.Error(1)
}
func (m *MockStore) ListMessages(channelID int64) ([]models.Message, error) {
	args := m.Called(channelID)
	return args.Get(0).([]models.Message), args.Error(1)
}
func (m *MockStore) DeleteMessage(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
