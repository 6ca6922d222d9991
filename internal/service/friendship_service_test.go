package service

import (
	"context"
	"errors"
	"testing"

	"wey/internal/models"

	"github.com/google/uuid"
)

type friendRepoStub struct {
	createRequestFn         func(context.Context, *models.FriendshipRequest) error
	getRequestByIDFn        func(context.Context, uuid.UUID) (*models.FriendshipRequest, error)
	getOpenRequestBetweenFn func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error)
	getRequestBetweenFn     func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error)
	getPendingRequestsFn    func(context.Context, uuid.UUID) ([]models.FriendshipRequest, error)
	updateStatusFn          func(context.Context, uuid.UUID, models.FriendshipStatus) error
	acceptFn                func(context.Context, *models.FriendshipRequest) error
	getFriendsFn            func(context.Context, uuid.UUID) ([]models.User, error)
	countFriendsFn          func(context.Context, uuid.UUID) (int64, error)
	areFriendsFn            func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, request *models.FriendshipRequest) error {
	return s.createRequestFn(ctx, request)
}
func (s *friendRepoStub) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.FriendshipRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *friendRepoStub) GetOpenRequestBetween(ctx context.Context, userID1, userID2 uuid.UUID) (*models.FriendshipRequest, error) {
	return s.getOpenRequestBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetRequestBetween(ctx context.Context, createdForID, createdByID uuid.UUID) (*models.FriendshipRequest, error) {
	return s.getRequestBetweenFn(ctx, createdForID, createdByID)
}
func (s *friendRepoStub) GetPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendshipRequest, error) {
	return s.getPendingRequestsFn(ctx, userID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, requestID uuid.UUID, status models.FriendshipStatus) error {
	return s.updateStatusFn(ctx, requestID, status)
}
func (s *friendRepoStub) Accept(ctx context.Context, request *models.FriendshipRequest) error {
	return s.acceptFn(ctx, request)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) CountFriends(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.countFriendsFn(ctx, userID)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID1, userID2 uuid.UUID) (bool, error) {
	return s.areFriendsFn(ctx, userID1, userID2)
}

type userRepoStub struct {
	getByIDFn      func(context.Context, uuid.UUID) (*models.User, error)
	getByEmailFn   func(context.Context, string) (*models.User, error)
	createFn       func(context.Context, *models.User) error
	updateFn       func(context.Context, *models.User) error
	searchByNameFn func(context.Context, string) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SearchByName(ctx context.Context, query string) ([]models.User, error) {
	return s.searchByNameFn(ctx, query)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:   func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:       func(context.Context, *models.User) error { return nil },
		updateFn:       func(context.Context, *models.User) error { return nil },
		searchByNameFn: func(context.Context, string) ([]models.User, error) { return nil, nil },
	}
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn: func(context.Context, *models.FriendshipRequest) error { return nil },
		getRequestByIDFn: func(_ context.Context, id uuid.UUID) (*models.FriendshipRequest, error) {
			return &models.FriendshipRequest{ID: id}, nil
		},
		getOpenRequestBetweenFn: func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
			return nil, nil
		},
		getRequestBetweenFn: func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
			return nil, models.NewNotFoundError("Friendship request", uuid.Nil)
		},
		getPendingRequestsFn: func(context.Context, uuid.UUID) ([]models.FriendshipRequest, error) { return nil, nil },
		updateStatusFn:       func(context.Context, uuid.UUID, models.FriendshipStatus) error { return nil },
		acceptFn:             func(context.Context, *models.FriendshipRequest) error { return nil },
		getFriendsFn:         func(context.Context, uuid.UUID) ([]models.User, error) { return nil, nil },
		countFriendsFn:       func(context.Context, uuid.UUID) (int64, error) { return 0, nil },
		areFriendsFn:         func(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return false, nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	svc := NewFriendshipService(noopFriendRepo(), noopUserRepo())
	id := uuid.New()
	_, err := svc.SendRequest(context.Background(), id, id)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestSendRequestRecipientNotFound(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFriendshipService(noopFriendRepo(), users)
	_, err := svc.SendRequest(context.Background(), uuid.New(), uuid.New())
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestSendRequestAlreadyOpenSameDirection(t *testing.T) {
	requester := uuid.New()
	recipient := uuid.New()

	repo := noopFriendRepo()
	repo.getOpenRequestBetweenFn = func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
		return &models.FriendshipRequest{
			CreatedByID:  requester,
			CreatedForID: recipient,
			Status:       models.FriendshipStatusSent,
		}, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), requester, recipient)
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestSendRequestAlreadyOpenReverseDirection(t *testing.T) {
	requester := uuid.New()
	recipient := uuid.New()

	repo := noopFriendRepo()
	repo.getOpenRequestBetweenFn = func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
		// The recipient already asked first.
		return &models.FriendshipRequest{
			CreatedByID:  recipient,
			CreatedForID: requester,
			Status:       models.FriendshipStatusSent,
		}, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), requester, recipient)
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestSendRequestAlreadyFriends(t *testing.T) {
	repo := noopFriendRepo()
	repo.areFriendsFn = func(context.Context, uuid.UUID, uuid.UUID) (bool, error) { return true, nil }

	svc := NewFriendshipService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), uuid.New(), uuid.New())
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestSendRequestCreatesSentRequest(t *testing.T) {
	requester := uuid.New()
	recipient := uuid.New()

	var created *models.FriendshipRequest
	repo := noopFriendRepo()
	repo.createRequestFn = func(_ context.Context, request *models.FriendshipRequest) error {
		request.ID = uuid.New()
		created = request
		return nil
	}
	repo.getRequestByIDFn = func(_ context.Context, id uuid.UUID) (*models.FriendshipRequest, error) {
		if created == nil || created.ID != id {
			t.Fatalf("reloaded unexpected request %s", id)
		}
		return created, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	request, err := svc.SendRequest(context.Background(), requester, recipient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.CreatedByID != requester || request.CreatedForID != recipient {
		t.Fatalf("request stored with wrong pair: %#v", request)
	}
	if request.Status != models.FriendshipStatusSent {
		t.Fatalf("expected status sent, got %s", request.Status)
	}
}

func TestSendRequestDuplicateLosesAtInsert(t *testing.T) {
	// Two simultaneous sends for the same pair can both pass the open-request
	// and friendship checks; the unique index on open pairs stops the second
	// insert, and that conflict must reach the caller unchanged.
	repo := noopFriendRepo()
	repo.createRequestFn = func(context.Context, *models.FriendshipRequest) error {
		return models.NewConflictError("Friend request already sent")
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	_, err := svc.SendRequest(context.Background(), uuid.New(), uuid.New())
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestResolveRequestInvalidDecision(t *testing.T) {
	svc := NewFriendshipService(noopFriendRepo(), noopUserRepo())
	_, err := svc.ResolveRequest(context.Background(), uuid.New(), uuid.New(), models.FriendshipStatusSent)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestResolveRequestNotFound(t *testing.T) {
	svc := NewFriendshipService(noopFriendRepo(), noopUserRepo())
	_, err := svc.ResolveRequest(context.Background(), uuid.New(), uuid.New(), models.FriendshipStatusAccepted)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestResolveRequestAccept(t *testing.T) {
	resolver := uuid.New()
	requester := uuid.New()
	requestID := uuid.New()

	accepted := false
	repo := noopFriendRepo()
	repo.getRequestBetweenFn = func(_ context.Context, createdForID, createdByID uuid.UUID) (*models.FriendshipRequest, error) {
		if createdForID != resolver || createdByID != requester {
			t.Fatalf("looked up wrong pair: for=%s by=%s", createdForID, createdByID)
		}
		return &models.FriendshipRequest{
			ID:           requestID,
			CreatedByID:  requester,
			CreatedForID: resolver,
			Status:       models.FriendshipStatusSent,
		}, nil
	}
	repo.acceptFn = func(_ context.Context, request *models.FriendshipRequest) error {
		accepted = true
		return nil
	}
	repo.updateStatusFn = func(context.Context, uuid.UUID, models.FriendshipStatus) error {
		t.Fatal("accept must not go through UpdateStatus")
		return nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	request, err := svc.ResolveRequest(context.Background(), resolver, requester, models.FriendshipStatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !accepted {
		t.Fatal("expected Accept to be called")
	}
	if request.Status != models.FriendshipStatusAccepted {
		t.Fatalf("expected status accepted, got %s", request.Status)
	}
}

func TestResolveRequestReject(t *testing.T) {
	resolver := uuid.New()
	requester := uuid.New()
	requestID := uuid.New()

	var updatedTo models.FriendshipStatus
	repo := noopFriendRepo()
	repo.getRequestBetweenFn = func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
		return &models.FriendshipRequest{
			ID:           requestID,
			CreatedByID:  requester,
			CreatedForID: resolver,
			Status:       models.FriendshipStatusSent,
		}, nil
	}
	repo.updateStatusFn = func(_ context.Context, id uuid.UUID, status models.FriendshipStatus) error {
		if id != requestID {
			t.Fatalf("updated wrong request %s", id)
		}
		updatedTo = status
		return nil
	}
	repo.acceptFn = func(context.Context, *models.FriendshipRequest) error {
		t.Fatal("reject must not create a friendship")
		return nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	request, err := svc.ResolveRequest(context.Background(), resolver, requester, models.FriendshipStatusRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedTo != models.FriendshipStatusRejected {
		t.Fatalf("expected status update to rejected, got %s", updatedTo)
	}
	if request.Status != models.FriendshipStatusRejected {
		t.Fatalf("expected status rejected, got %s", request.Status)
	}
}

func TestResolveRequestAlreadyResolved(t *testing.T) {
	// Resolution looks the request up by user pair without a status filter,
	// so a previously accepted request can still be rejected.
	resolver := uuid.New()
	requester := uuid.New()

	repo := noopFriendRepo()
	repo.getRequestBetweenFn = func(context.Context, uuid.UUID, uuid.UUID) (*models.FriendshipRequest, error) {
		return &models.FriendshipRequest{
			ID:           uuid.New(),
			CreatedByID:  requester,
			CreatedForID: resolver,
			Status:       models.FriendshipStatusAccepted,
		}, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	request, err := svc.ResolveRequest(context.Background(), resolver, requester, models.FriendshipStatusRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != models.FriendshipStatusRejected {
		t.Fatalf("expected status rejected, got %s", request.Status)
	}
}

func TestFriendsAndRequestsOwnerSeesRequests(t *testing.T) {
	owner := uuid.New()
	pending := []models.FriendshipRequest{
		{ID: uuid.New(), CreatedForID: owner, Status: models.FriendshipStatusSent},
	}

	repo := noopFriendRepo()
	repo.getFriendsFn = func(context.Context, uuid.UUID) ([]models.User, error) {
		return []models.User{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}
	repo.getPendingRequestsFn = func(_ context.Context, userID uuid.UUID) ([]models.FriendshipRequest, error) {
		if userID != owner {
			t.Fatalf("fetched requests for wrong user %s", userID)
		}
		return pending, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	overview, err := svc.FriendsAndRequests(context.Background(), owner, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.Requests) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(overview.Requests))
	}
	if len(overview.Friends) != 2 {
		t.Fatalf("expected 2 friends, got %d", len(overview.Friends))
	}
	if overview.User.FriendsCount != 2 {
		t.Fatalf("expected friends count 2, got %d", overview.User.FriendsCount)
	}
}

func TestFriendsAndRequestsHiddenFromOtherViewers(t *testing.T) {
	owner := uuid.New()
	viewer := uuid.New()

	repo := noopFriendRepo()
	repo.getPendingRequestsFn = func(context.Context, uuid.UUID) ([]models.FriendshipRequest, error) {
		t.Fatal("pending requests must not be fetched for another viewer")
		return nil, nil
	}

	svc := NewFriendshipService(repo, noopUserRepo())
	overview, err := svc.FriendsAndRequests(context.Background(), viewer, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Requests == nil || len(overview.Requests) != 0 {
		t.Fatalf("expected empty requests for non-owner, got %#v", overview.Requests)
	}
	if overview.Friends == nil {
		t.Fatal("friends must be an empty slice, not nil")
	}
}
