package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"communityapp-backend/internal/database"
	"communityapp-backend/internal/models"
)

func setupTest(t *testing.T) *database.MockStore {
	t.Helper()

	mockStore := &database.MockStore{}
	Setup(zap.NewNop().Sugar(), mockStore)
	return mockStore
}

// authedRequest builds a request that already passed UserVerifier.
func authedRequest(method, target string, body string, userID int64) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), userIDKeyType{}, userID)
	return req.WithContext(ctx)
}

func testMembers() []models.ServerMember {
	return []models.ServerMember{
		{ServerID: 1, UserID: 10, PermissionLevel: 9, Since: time.Now()},
		{ServerID: 1, UserID: 11, PermissionLevel: 4, Since: time.Now()},
		{ServerID: 1, UserID: 12, PermissionLevel: 3, Since: time.Now()},
	}
}

func TestAnonymousRequestIsRejectedBeforeAnyLookup(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	router := Router(&models.ConfigFile{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/message/fetch?channelID=5", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	mockStore.AssertNotCalled(t, "ListServerMembers", mock.Anything)
	mockStore.AssertNotCalled(t, "GetChannel", mock.Anything)
}

func TestGetMessageListPermissionBoundary(t *testing.T) {
	channel := models.Channel{ID: 5, ServerID: 1, Name: "staff", PermissionLevel: 4}

	tcases := []struct {
		name         string
		userID       int64
		expectedCode int
	}{
		{
			name:         "member at the required level is allowed",
			userID:       11,
			expectedCode: http.StatusOK,
		},
		{
			name:         "member below the required level is denied",
			userID:       12,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "non-member is denied",
			userID:       99,
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockStore := setupTest(t)
			defer mockStore.AssertExpectations(t)

			mockStore.On("GetChannel", int64(5)).Return(channel, nil).Once()
			mockStore.On("ListServerMembers", int64(1)).Return(testMembers(), nil).Once()
			if tc.expectedCode == http.StatusOK {
				mockStore.On("ListMessages", int64(5)).Return([]models.Message{}, nil).Once()
			}

			rr := httptest.NewRecorder()
			req := authedRequest(http.MethodGet, "/api/message/fetch?channelID=5", "", tc.userID)
			GetMessageList(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}

func TestCreateMessageDeniedBelowChannelLevel(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	channel := models.Channel{ID: 5, ServerID: 1, Name: "staff", PermissionLevel: 4}
	mockStore.On("GetChannel", int64(5)).Return(channel, nil).Once()
	mockStore.On("ListServerMembers", int64(1)).Return(testMembers(), nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/message/create",
		`{"message":"hi","channelID":"5"}`, 12)
	CreateMessage(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	mockStore.AssertNotCalled(t, "CreateMessage", mock.Anything)
}

func TestGetChannelListFiltersByLevel(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListServerMembers", int64(1)).Return(testMembers(), nil).Once()
	mockStore.On("ListChannels", int64(1)).Return([]models.Channel{
		{ID: 5, ServerID: 1, Name: "general", PermissionLevel: 1},
		{ID: 6, ServerID: 1, Name: "staff", PermissionLevel: 4},
	}, nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/channel/fetch?serverID=1", "", 12)
	GetChannelList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []models.Channel `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "general", resp.Data[0].Name)
}

func TestDeleteServerRequiresOwnership(t *testing.T) {
	server := models.Server{ID: 1, OwnerID: 10, Name: "home"}

	t.Run("non-owner is denied", func(t *testing.T) {
		mockStore := setupTest(t)
		defer mockStore.AssertExpectations(t)

		mockStore.On("GetServer", int64(1)).Return(server, nil).Once()

		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/server/delete?serverID=1", "", 11)
		DeleteServer(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStore.AssertNotCalled(t, "DeleteServer", mock.Anything)
	})

	t.Run("owner deletes", func(t *testing.T) {
		mockStore := setupTest(t)
		defer mockStore.AssertExpectations(t)

		mockStore.On("GetServer", int64(1)).Return(server, nil).Once()
		mockStore.On("DeleteServer", int64(1)).Return(nil).Once()

		rr := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/api/server/delete?serverID=1", "", 10)
		DeleteServer(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestSendFriendRequestEndpoint(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("UserExists", int64(2)).Return(true, nil).Once()
	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("CreateFriendRequest", int64(2), int64(1)).Return(nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/friend/request?userID=2", "", 1)
	SendFriendRequest(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pending")
}

func TestAcceptFriendRequestEndpointAlreadyFriends(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("AreFriends", int64(1), int64(2)).Return(true, nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/friend/accept?userID=2", "", 1)
	AcceptFriendRequest(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStore.AssertNotCalled(t, "CreateFriendship", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetConversationRequiresFriendship(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/api/dm/fetch?userID=2", "", 1)
	GetConversation(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	mockStore.AssertNotCalled(t, "GetConversation", mock.Anything, mock.Anything)
}

func TestDeleteAccountClearsSession(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListFriendIDs", int64(1)).Return([]int64{}, nil).Once()
	mockStore.On("DeleteFriendRequestsFor", int64(1)).Return(nil).Once()
	mockStore.On("ListServersForUser", int64(1)).Return([]models.Server{}, nil).Once()
	mockStore.On("DeleteConversationsFor", int64(1)).Return(nil).Once()
	mockStore.On("DeleteUser", int64(1)).Return(nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/user/delete", "", 1)
	DeleteAccount(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)

	var jwtCookie *http.Cookie
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "JWT" {
			jwtCookie = cookie
		}
	}
	if assert.NotNil(t, jwtCookie, "expected the JWT cookie to be overwritten") {
		assert.Empty(t, jwtCookie.Value)
	}
}

func TestLeaveServerDeniedForOwner(t *testing.T) {
	mockStore := setupTest(t)
	defer mockStore.AssertExpectations(t)

	mockStore.On("GetServer", int64(1)).Return(models.Server{ID: 1, OwnerID: 10}, nil).Once()

	rr := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/server/leave?serverID=1", "", 10)
	LeaveServer(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStore.AssertNotCalled(t, "RemoveServerMember", mock.Anything, mock.Anything)
}
