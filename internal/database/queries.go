package database

import (
	"database/sql"

	"communityapp-backend/internal/models"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// orderPair normalizes an unordered user pair so it always maps to the same
// conversation row.
func orderPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

func (s *SQLStore) Ping() error {
	return s.db.Ping()
}

func (s *SQLStore) CreateUser(u models.User) error {
	_, err := s.db.Exec("INSERT INTO users (id, email, username, display_name, bio, theme, password) VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.Email, u.UserName, u.DisplayName, u.Bio, u.Theme, u.Password)
	return err
}

func (s *SQLStore) GetUserByID(id int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRow("SELECT id, email, username, display_name, bio, theme FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Email, &u.UserName, &u.DisplayName, &u.Bio, &u.Theme)
	return u, err
}

func (s *SQLStore) GetUserByEmail(email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow("SELECT id, email, username, display_name, bio, theme, password FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Email, &u.UserName, &u.DisplayName, &u.Bio, &u.Theme, &u.Password)
	return u, err
}

func (s *SQLStore) UserExists(id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

func (s *SQLStore) UpdateUserProfile(id int64, displayName, bio, theme string) error {
	_, err := s.db.Exec("UPDATE users SET display_name = ?, bio = ?, theme = ? WHERE id = ?",
		displayName, bio, theme, id)
	return err
}

func (s *SQLStore) DeleteUser(id int64) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

func (s *SQLStore) CreateFriendRequest(targetID, requesterID int64) error {
	_, err := s.db.Exec("INSERT INTO friend_requests (user_id, requester_id) VALUES (?, ?)",
		targetID, requesterID)
	return err
}

func (s *SQLStore) DeleteFriendRequest(targetID, requesterID int64) error {
	_, err := s.db.Exec("DELETE FROM friend_requests WHERE user_id = ? AND requester_id = ?",
		targetID, requesterID)
	return err
}

func (s *SQLStore) FriendRequestExists(targetID, requesterID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM friend_requests WHERE user_id = ? AND requester_id = ?)",
		targetID, requesterID).Scan(&exists)
	return exists, err
}

func (s *SQLStore) ListFriendRequests(targetID int64) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT users.id, users.username, users.display_name, users.bio
		FROM friend_requests
		JOIN users ON friend_requests.requester_id = users.id
		WHERE friend_requests.user_id = ?
		ORDER BY friend_requests.since`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (s *SQLStore) DeleteFriendRequestsFor(userID int64) error {
	_, err := s.db.Exec("DELETE FROM friend_requests WHERE user_id = ? OR requester_id = ?",
		userID, userID)
	return err
}

func (s *SQLStore) AreFriends(userAID, userBID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)",
		userAID, userBID).Scan(&exists)
	return exists, err
}

func (s *SQLStore) ListFriends(userID int64) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT users.id, users.username, users.display_name, users.bio
		FROM friends
		JOIN users ON friends.friend_id = users.id
		WHERE friends.user_id = ?
		ORDER BY users.username`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (s *SQLStore) ListFriendIDs(userID int64) ([]int64, error) {
	rows, err := s.db.Query("SELECT friend_id FROM friends WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CreateFriendship promotes a pair to friends in one transaction: both
// pending markers are consumed, both friendship directions inserted and the
// pair conversation created. The unique (user_a, user_b) index makes the
// conversation exactly-once; a second promotion rolls the whole thing back.
func (s *SQLStore) CreateFriendship(userAID, userBID, conversationID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM friend_requests WHERE (user_id = ? AND requester_id = ?) OR (user_id = ? AND requester_id = ?)",
		userAID, userBID, userBID, userAID)
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO friends (user_id, friend_id) VALUES (?, ?), (?, ?)",
		userAID, userBID, userBID, userAID)
	if err != nil {
		return err
	}

	lo, hi := orderPair(userAID, userBID)
	_, err = tx.Exec("INSERT INTO conversations (id, user_a, user_b) VALUES (?, ?, ?)",
		conversationID, lo, hi)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteFriendship removes both directions and the pair conversation in one
// transaction. Private messages fall with the conversation row.
func (s *SQLStore) DeleteFriendship(userAID, userBID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM friends WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userAID, userBID, userBID, userAID)
	if err != nil {
		return err
	}

	lo, hi := orderPair(userAID, userBID)
	_, err = tx.Exec("DELETE FROM conversations WHERE user_a = ? AND user_b = ?", lo, hi)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) GetConversation(userAID, userBID int64) (models.Conversation, error) {
	lo, hi := orderPair(userAID, userBID)

	var c models.Conversation
	err := s.db.QueryRow("SELECT id, user_a, user_b FROM conversations WHERE user_a = ? AND user_b = ?", lo, hi).
		Scan(&c.ID, &c.UserAID, &c.UserBID)
	return c, err
}

func (s *SQLStore) ListConversationMessages(conversationID int64) ([]models.PrivateMessage, error) {
	rows, err := s.db.Query(`
		SELECT
			private_messages.id,
			private_messages.conversation_id,
			private_messages.user_id,
			private_messages.message,
			users.display_name
		FROM private_messages
		JOIN users ON private_messages.user_id = users.id
		WHERE private_messages.conversation_id = ?
		ORDER BY private_messages.id`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.PrivateMessage{}
	for rows.Next() {
		var pm models.PrivateMessage
		if err := rows.Scan(&pm.ID, &pm.ConversationID, &pm.UserID, &pm.Message, &pm.User.DisplayName); err != nil {
			return nil, err
		}
		messages = append(messages, pm)
	}

	return messages, rows.Err()
}

func (s *SQLStore) CreatePrivateMessage(pm models.PrivateMessage) error {
	_, err := s.db.Exec("INSERT INTO private_messages (id, conversation_id, user_id, message) VALUES (?, ?, ?, ?)",
		pm.ID, pm.ConversationID, pm.UserID, pm.Message)
	return err
}

func (s *SQLStore) DeleteConversationsFor(userID int64) error {
	_, err := s.db.Exec("DELETE FROM conversations WHERE user_a = ? OR user_b = ?", userID, userID)
	return err
}

// CreateServer inserts the server, its owner membership at the maximum
// permission level and the default channel in one transaction, so a server
// is never persisted with zero channels or without its owner row.
func (s *SQLStore) CreateServer(server models.Server, general models.Channel) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec("INSERT INTO servers (id, owner_id, name, picture, banner) VALUES (?, ?, ?, ?, ?)",
		server.ID, server.OwnerID, server.Name, server.Picture, server.Banner)
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO server_members (server_id, user_id, permission_level) VALUES (?, ?, ?)",
		server.ID, server.OwnerID, 9)
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO channels (id, server_id, name, description, permission_level) VALUES (?, ?, ?, ?, ?)",
		general.ID, general.ServerID, general.Name, general.Description, general.PermissionLevel)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) GetServer(id int64) (models.Server, error) {
	var server models.Server
	err := s.db.QueryRow("SELECT id, owner_id, name, picture, banner FROM servers WHERE id = ?", id).
		Scan(&server.ID, &server.OwnerID, &server.Name, &server.Picture, &server.Banner)
	return server, err
}

func (s *SQLStore) RenameServer(id int64, name string) error {
	_, err := s.db.Exec("UPDATE servers SET name = ? WHERE id = ?", name, id)
	return err
}

func (s *SQLStore) DeleteServer(id int64) error {
	_, err := s.db.Exec("DELETE FROM servers WHERE id = ?", id)
	return err
}

func (s *SQLStore) ListServersForUser(userID int64) ([]models.Server, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.owner_id, s.name, s.picture, s.banner
		FROM servers s
		JOIN server_members m ON s.id = m.server_id
		WHERE m.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	servers := []models.Server{}
	for rows.Next() {
		var server models.Server
		if err := rows.Scan(&server.ID, &server.OwnerID, &server.Name, &server.Picture, &server.Banner); err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}

	return servers, rows.Err()
}

func (s *SQLStore) AddServerMember(serverID, userID int64, permissionLevel int) error {
	_, err := s.db.Exec("INSERT INTO server_members (server_id, user_id, permission_level) VALUES (?, ?, ?)",
		serverID, userID, permissionLevel)
	return err
}

func (s *SQLStore) RemoveServerMember(serverID, userID int64) error {
	_, err := s.db.Exec("DELETE FROM server_members WHERE server_id = ? AND user_id = ?",
		serverID, userID)
	return err
}

func (s *SQLStore) ListServerMembers(serverID int64) ([]models.ServerMember, error) {
	rows, err := s.db.Query("SELECT server_id, user_id, permission_level, since FROM server_members WHERE server_id = ?", serverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.ServerMember{}
	for rows.Next() {
		var m models.ServerMember
		if err := rows.Scan(&m.ServerID, &m.UserID, &m.PermissionLevel, &m.Since); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (s *SQLStore) CreateChannel(ch models.Channel) error {
	_, err := s.db.Exec("INSERT INTO channels (id, server_id, name, description, permission_level) VALUES (?, ?, ?, ?, ?)",
		ch.ID, ch.ServerID, ch.Name, ch.Description, ch.PermissionLevel)
	return err
}

func (s *SQLStore) GetChannel(id int64) (models.Channel, error) {
	var ch models.Channel
	err := s.db.QueryRow("SELECT id, server_id, name, description, permission_level FROM channels WHERE id = ?", id).
		Scan(&ch.ID, &ch.ServerID, &ch.Name, &ch.Description, &ch.PermissionLevel)
	return ch, err
}

func (s *SQLStore) ListChannels(serverID int64) ([]models.Channel, error) {
	rows, err := s.db.Query("SELECT id, server_id, name, description, permission_level FROM channels WHERE server_id = ?", serverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.ServerID, &ch.Name, &ch.Description, &ch.PermissionLevel); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	return channels, rows.Err()
}

func (s *SQLStore) DeleteChannel(id int64) error {
	_, err := s.db.Exec("DELETE FROM channels WHERE id = ?", id)
	return err
}

func (s *SQLStore) CreateMessage(m models.Message) error {
	_, err := s.db.Exec("INSERT INTO messages (id, channel_id, user_id, message, edited) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.ChannelID, m.UserID, m.Message, m.Edited)
	return err
}

func (s *SQLStore) GetMessage(id int64) (models.Message, error) {
	var m models.Message
	err := s.db.QueryRow("SELECT id, channel_id, user_id, message, edited FROM messages WHERE id = ?", id).
		Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.Edited)
	return m, err
}

func (s *SQLStore) ListMessages(channelID int64) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT
			messages.id,
			messages.channel_id,
			messages.user_id,
			messages.message,
			messages.edited,
			users.display_name
		FROM messages
		JOIN users ON messages.user_id = users.id
		WHERE messages.channel_id = ?
		ORDER BY messages.id`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.UserID, &m.Message, &m.Edited, &m.User.DisplayName); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (s *SQLStore) DeleteMessage(id int64) error {
	_, err := s.db.Exec("DELETE FROM messages WHERE id = ?", id)
	return err
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UserName, &u.DisplayName, &u.Bio); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
