package database

import "communityapp-backend/internal/models"

// Store is the persistence surface the services and handlers work against.
// The SQL implementation keeps multi-row operations inside a single
// transaction; callers get no atomicity guarantee across separate calls.
type Store interface {
	Ping() error

	CreateUser(u models.User) error
	GetUserByID(id int64) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	UserExists(id int64) (bool, error)
	UpdateUserProfile(id int64, displayName, bio, theme string) error
	DeleteUser(id int64) error

	CreateFriendRequest(targetID, requesterID int64) error
	DeleteFriendRequest(targetID, requesterID int64) error
	FriendRequestExists(targetID, requesterID int64) (bool, error)
	ListFriendRequests(targetID int64) ([]models.User, error)
	DeleteFriendRequestsFor(userID int64) error

	AreFriends(userAID, userBID int64) (bool, error)
	ListFriends(userID int64) ([]models.User, error)
	ListFriendIDs(userID int64) ([]int64, error)
	CreateFriendship(userAID, userBID, conversationID int64) error
	DeleteFriendship(userAID, userBID int64) error

	GetConversation(userAID, userBID int64) (models.Conversation, error)
	ListConversationMessages(conversationID int64) ([]models.PrivateMessage, error)
	CreatePrivateMessage(pm models.PrivateMessage) error
	DeleteConversationsFor(userID int64) error

	CreateServer(server models.Server, general models.Channel) error
	GetServer(id int64) (models.Server, error)
	RenameServer(id int64, name string) error
	DeleteServer(id int64) error
	ListServersForUser(userID int64) ([]models.Server, error)
	AddServerMember(serverID, userID int64, permissionLevel int) error
	RemoveServerMember(serverID, userID int64) error
	ListServerMembers(serverID int64) ([]models.ServerMember, error)

	CreateChannel(ch models.Channel) error
	GetChannel(id int64) (models.Channel, error)
	ListChannels(serverID int64) ([]models.Channel, error)
	DeleteChannel(id int64) error

	CreateMessage(m models.Message) error
	GetMessage(id int64) (models.Message, error)
	ListMessages(channelID int64) ([]models.Message, error)
	DeleteMessage(id int64) error
}
