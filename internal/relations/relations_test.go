package relations

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/database"
)

func newTestService(store database.Store) *Service {
	return NewService(store, zap.NewNop().Sugar())
}

func TestSendFriendRequest(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("UserExists", int64(2)).Return(true, nil).Once()
	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("CreateFriendRequest", int64(2), int64(1)).Return(nil).Once()

	svc := newTestService(mockStore)
	state, err := svc.SendFriendRequest(2, 1)

	assert.NoError(t, err)
	assert.Equal(t, StatePending, state)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	svc := newTestService(&database.MockStore{})
	_, err := svc.SendFriendRequest(1, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
}

func TestSendFriendRequestUnknownUser(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("UserExists", int64(99)).Return(false, nil).Once()

	svc := newTestService(mockStore)
	_, err := svc.SendFriendRequest(99, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestSendFriendRequestDuplicate(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("UserExists", int64(2)).Return(true, nil).Once()
	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(true, nil).Once()

	svc := newTestService(mockStore)
	state, err := svc.SendFriendRequest(2, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Equal(t, StatePending, state)
}

func TestSendFriendRequestCrossRequestCollapses(t *testing.T) {
	// user 2 already requested user 1, so 1 sending to 2 must land both in
	// the friends state with the conversation provisioned and no marker left
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("UserExists", int64(2)).Return(true, nil).Once()
	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()
	mockStore.On("FriendRequestExists", int64(1), int64(2)).Return(true, nil).Once()
	mockStore.On("CreateFriendship", int64(1), int64(2), mock.AnythingOfType("int64")).Return(nil).Once()

	svc := newTestService(mockStore)
	state, err := svc.SendFriendRequest(2, 1)

	assert.NoError(t, err)
	assert.Equal(t, StateFriends, state)
	mockStore.AssertNotCalled(t, "CreateFriendRequest", mock.Anything, mock.Anything)
}

func TestAcceptFriendRequest(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(true, nil).Once()
	mockStore.On("CreateFriendship", int64(2), int64(1), mock.AnythingOfType("int64")).Return(nil).Once()

	svc := newTestService(mockStore)
	err := svc.AcceptFriendRequest(2, 1)

	assert.NoError(t, err)
}

func TestAcceptFriendRequestTwice(t *testing.T) {
	// second accept: marker already consumed, pair already friends, the call
	// must report instead of creating a second conversation
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()
	mockStore.On("AreFriends", int64(2), int64(1)).Return(true, nil).Once()

	svc := newTestService(mockStore)
	err := svc.AcceptFriendRequest(2, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	mockStore.AssertNotCalled(t, "CreateFriendship", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptFriendRequestWithoutPending(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()
	mockStore.On("AreFriends", int64(2), int64(1)).Return(false, nil).Once()

	svc := newTestService(mockStore)
	err := svc.AcceptFriendRequest(2, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestRejectFriendRequest(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(true, nil).Once()
	mockStore.On("DeleteFriendRequest", int64(2), int64(1)).Return(nil).Once()

	svc := newTestService(mockStore)
	err := svc.RejectFriendRequest(2, 1)

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "CreateFriendship", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectFriendRequestWithoutPending(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("FriendRequestExists", int64(2), int64(1)).Return(false, nil).Once()

	svc := newTestService(mockStore)
	err := svc.RejectFriendRequest(2, 1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestRemoveFriend(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("AreFriends", int64(1), int64(2)).Return(true, nil).Once()
	mockStore.On("DeleteFriendship", int64(1), int64(2)).Return(nil).Once()

	svc := newTestService(mockStore)
	err := svc.RemoveFriend(1, 2)

	assert.NoError(t, err)
}

func TestRemoveFriendNotFriends(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, nil).Once()

	svc := newTestService(mockStore)
	err := svc.RemoveFriend(1, 2)

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
	mockStore.AssertNotCalled(t, "DeleteFriendship", mock.Anything, mock.Anything)
}

func TestStoreFailureSurfacesAsInternal(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("AreFriends", int64(1), int64(2)).Return(false, errors.New("db down")).Once()

	svc := newTestService(mockStore)
	err := svc.RemoveFriend(1, 2)

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
}
