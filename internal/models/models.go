package models

import "time"

type User struct {
	ID          int64  `json:"id,string,omitempty"`
	Email       string `json:"email,omitempty"`
	UserName    string `json:"userName,omitempty"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	Theme       string `json:"theme,omitempty"`
	Password    []byte `json:"password,omitempty"`
}

type Server struct {
	ID      int64  `json:"id,string"`
	OwnerID int64  `json:"ownerID,string"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Banner  string `json:"banner"`
}

// ServerMember is one row of a server's users collection. PermissionLevel
// runs from 1 (plain member) to 9 (owner), higher means more privileged.
type ServerMember struct {
	ServerID        int64     `json:"serverID,string"`
	UserID          int64     `json:"userID,string"`
	PermissionLevel int       `json:"permissionLevel"`
	Since           time.Time `json:"since"`
}

type Channel struct {
	ID              int64  `json:"id,string"`
	ServerID        int64  `json:"serverID,string"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PermissionLevel int    `json:"permissionLevel"`
}

type Message struct {
	ID        int64  `json:"id,string"`
	ChannelID int64  `json:"channelID,string"`
	UserID    int64  `json:"userID,string"`
	Message   string `json:"message"`
	Edited    bool   `json:"edited"`
	User      User   `json:"user"`
}

// Conversation is the private message thread shared by exactly one friended
// pair. UserAID is always the smaller of the two ids so the unordered pair
// maps to a single row.
type Conversation struct {
	ID      int64 `json:"id,string"`
	UserAID int64 `json:"userAID,string"`
	UserBID int64 `json:"userBID,string"`
}

type PrivateMessage struct {
	ID             int64  `json:"id,string"`
	ConversationID int64  `json:"conversationID,string"`
	UserID         int64  `json:"userID,string"`
	Message        string `json:"message"`
	User           User   `json:"user"`
}

type ConfigFile struct {
	Address           string
	Port              string
	BehindNginx       bool
	TlsCert           string
	TlsKey            string
	CorsOrigins       []string
	PrintHttpRequests bool
	LogToFile         bool
	JwtSecret         string
	SnowflakeWorkerID int64
	SelfContained     bool
	DbUser            string
	DbPassword        string
	DbAddress         string
	DbPort            string
	DbDatabase        string
	SmtpUsername      string
	SmtpPassword      string
	SmtpServer        string
	SmtpPort          int
}
