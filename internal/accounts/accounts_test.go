package accounts

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/database"
	"communityapp-backend/internal/models"
)

func newTestService(store database.Store) *Service {
	return NewService(store, zap.NewNop().Sugar())
}

func TestDeleteUnwindsEverything(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	// user 1 has two friends, owns server 100 and is a plain member of 200
	mockStore.On("ListFriendIDs", int64(1)).Return([]int64{2, 3}, nil).Once()
	mockStore.On("DeleteFriendship", int64(1), int64(2)).Return(nil).Once()
	mockStore.On("DeleteFriendship", int64(1), int64(3)).Return(nil).Once()
	mockStore.On("DeleteFriendRequestsFor", int64(1)).Return(nil).Once()
	mockStore.On("ListServersForUser", int64(1)).Return([]models.Server{
		{ID: 100, OwnerID: 1, Name: "mine"},
		{ID: 200, OwnerID: 9, Name: "theirs"},
	}, nil).Once()
	mockStore.On("DeleteServer", int64(100)).Return(nil).Once()
	mockStore.On("RemoveServerMember", int64(200), int64(1)).Return(nil).Once()
	mockStore.On("DeleteConversationsFor", int64(1)).Return(nil).Once()
	mockStore.On("DeleteUser", int64(1)).Return(nil).Once()

	svc := newTestService(mockStore)
	err := svc.Delete(1)

	assert.NoError(t, err)
}

func TestDeleteOwnedServerCascades(t *testing.T) {
	// deleting the creator deletes the whole server, never just the membership
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListFriendIDs", int64(1)).Return([]int64{}, nil).Once()
	mockStore.On("DeleteFriendRequestsFor", int64(1)).Return(nil).Once()
	mockStore.On("ListServersForUser", int64(1)).Return([]models.Server{
		{ID: 100, OwnerID: 1, Name: "mine"},
	}, nil).Once()
	mockStore.On("DeleteServer", int64(100)).Return(nil).Once()
	mockStore.On("DeleteConversationsFor", int64(1)).Return(nil).Once()
	mockStore.On("DeleteUser", int64(1)).Return(nil).Once()

	svc := newTestService(mockStore)
	err := svc.Delete(1)

	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "RemoveServerMember", mock.Anything, mock.Anything)
}

func TestDeleteAbortsOnStepFailure(t *testing.T) {
	// a failing step must stop the workflow before the user row is touched
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListFriendIDs", int64(1)).Return([]int64{2}, nil).Once()
	mockStore.On("DeleteFriendship", int64(1), int64(2)).Return(errors.New("db down")).Once()

	svc := newTestService(mockStore)
	err := svc.Delete(1)

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(err))
	mockStore.AssertNotCalled(t, "DeleteUser", mock.Anything)
	mockStore.AssertNotCalled(t, "ListServersForUser", mock.Anything)
}

func TestDeleteAbortsBeforeUserRowOnServerFailure(t *testing.T) {
	mockStore := &database.MockStore{}
	defer mockStore.AssertExpectations(t)

	mockStore.On("ListFriendIDs", int64(1)).Return([]int64{}, nil).Once()
	mockStore.On("DeleteFriendRequestsFor", int64(1)).Return(nil).Once()
	mockStore.On("ListServersForUser", int64(1)).Return([]models.Server{
		{ID: 100, OwnerID: 1, Name: "mine"},
	}, nil).Once()
	mockStore.On("DeleteServer", int64(100)).Return(errors.New("db down")).Once()

	svc := newTestService(mockStore)
	err := svc.Delete(1)

	assert.Error(t, err)
	mockStore.AssertNotCalled(t, "DeleteUser", mock.Anything)
}
