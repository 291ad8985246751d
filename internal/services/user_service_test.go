package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// fakeCredentialStore records calls and can be told to fail, standing in for
// the external credential system.
type fakeCredentialStore struct {
	createErr error
	deleteErr error

	createdEmails  []string
	createdUserIDs []uint64
	deletedUserIDs []uint64
	grantedUserIDs []uint64
}

func (f *fakeCredentialStore) CreateAccount(email, password string, userID uint64) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdEmails = append(f.createdEmails, email)
	f.createdUserIDs = append(f.createdUserIDs, userID)
	return nil
}

func (f *fakeCredentialStore) DeleteAccountsForUser(userID uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedUserIDs = append(f.deletedUserIDs, userID)
	return nil
}

func (f *fakeCredentialStore) TryGrantAdmin(userID uint64) error {
	f.grantedUserIDs = append(f.grantedUserIDs, userID)
	return nil
}

func (f *fakeCredentialStore) HasRole(userID uint64, role string) (bool, error) {
	return false, nil
}

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	credentials *fakeCredentialStore
	service     *UserService
}

// SetupTest runs before each test
func (suite *UserServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{}, &models.Subtask{})
	suite.Require().NoError(err)

	suite.credentials = &fakeCredentialStore{}
	suite.service = NewUserService(repository.NewUserRepository(suite.db), suite.credentials)
}

// TearDownTest runs after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserServiceTestSuite) createTestUser(email string, state models.UserState) *models.User {
	user := &models.User{Name: "Existing", Email: email, State: state}
	suite.db.Create(user)
	return user
}

func (suite *UserServiceTestSuite) userCount() int64 {
	var count int64
	suite.db.Model(&models.User{}).Count(&count)
	return count
}

func (suite *UserServiceTestSuite) TestCreate_Success() {
	user, err := suite.service.Create(CreateUserInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "password123",
	})

	suite.Require().NoError(err)
	assert.NotZero(suite.T(), user.ID)
	assert.Equal(suite.T(), models.UserStateActive, user.State)

	// Exactly one row and exactly one credential, correlated by id.
	assert.Equal(suite.T(), int64(1), suite.userCount())
	suite.Require().Len(suite.credentials.createdUserIDs, 1)
	assert.Equal(suite.T(), user.ID, suite.credentials.createdUserIDs[0])
	assert.Equal(suite.T(), []string{"new@example.com"}, suite.credentials.createdEmails)
}

func (suite *UserServiceTestSuite) TestCreate_ActiveEmailConflict() {
	suite.createTestUser("taken@example.com", models.UserStateActive)

	_, err := suite.service.Create(CreateUserInput{
		Name:     "New User",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.True(suite.T(), apperrors.IsUserExists(err))
	assert.Empty(suite.T(), suite.credentials.createdUserIDs)
	assert.Equal(suite.T(), int64(1), suite.userCount())
}

func (suite *UserServiceTestSuite) TestCreate_DeletedUserEmailIsReusable() {
	suite.createTestUser("back@example.com", models.UserStateDeleted)

	user, err := suite.service.Create(CreateUserInput{
		Name:     "Returning",
		Email:    "back@example.com",
		Password: "password123",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.UserStateActive, user.State)
	assert.Equal(suite.T(), int64(2), suite.userCount())
}

// A credential store failure must undo the user row and surface the original
// error unchanged.
func (suite *UserServiceTestSuite) TestCreate_CredentialFailureCompensates() {
	credErr := errors.New("identity provider unavailable")
	suite.credentials.createErr = credErr

	_, err := suite.service.Create(CreateUserInput{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "password123",
	})

	assert.Equal(suite.T(), credErr, err)
	assert.Zero(suite.T(), suite.userCount())
}

func (suite *UserServiceTestSuite) TestGetAll_ReturnsActiveOnly() {
	suite.createTestUser("active@example.com", models.UserStateActive)
	suite.createTestUser("gone@example.com", models.UserStateDeleted)

	users, err := suite.service.GetAll()

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	assert.Equal(suite.T(), "active@example.com", users[0].Email)
}

func (suite *UserServiceTestSuite) TestGetByID_AbsentNotFound() {
	_, err := suite.service.GetByID(12345)

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *UserServiceTestSuite) TestGetByEmail_AbsentReturnsNil() {
	user, err := suite.service.GetByEmail("nobody@example.com")

	suite.Require().NoError(err)
	assert.Nil(suite.T(), user)
}

func (suite *UserServiceTestSuite) TestUpdate_ReplacesName() {
	existing := suite.createTestUser("user@example.com", models.UserStateActive)

	user, err := suite.service.Update(existing.ID, UpdateUserInput{Name: "Renamed"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Renamed", user.Name)
}

func (suite *UserServiceTestSuite) TestUpdate_AbsentNotFound() {
	_, err := suite.service.Update(12345, UpdateUserInput{Name: "X"})

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *UserServiceTestSuite) TestDeactivate_MarksDeletedAndRemovesCredentials() {
	existing := suite.createTestUser("user@example.com", models.UserStateActive)

	err := suite.service.Deactivate(existing.ID)

	suite.Require().NoError(err)

	var reloaded models.User
	suite.db.First(&reloaded, existing.ID)
	assert.Equal(suite.T(), models.UserStateDeleted, reloaded.State)
	assert.Equal(suite.T(), []uint64{existing.ID}, suite.credentials.deletedUserIDs)

	// Row survives deactivation; users are never removed physically.
	assert.Equal(suite.T(), int64(1), suite.userCount())
}

func (suite *UserServiceTestSuite) TestDeactivate_AbsentSkipsCredentialStore() {
	err := suite.service.Deactivate(12345)

	assert.True(suite.T(), apperrors.IsNotFound(err))
	assert.Empty(suite.T(), suite.credentials.deletedUserIDs)
}

// The local state flip is authoritative: a credential store failure
// propagates but does not roll it back.
func (suite *UserServiceTestSuite) TestDeactivate_CredentialFailureKeepsLocalState() {
	existing := suite.createTestUser("user@example.com", models.UserStateActive)
	suite.credentials.deleteErr = errors.New("identity provider unavailable")

	err := suite.service.Deactivate(existing.ID)

	assert.Error(suite.T(), err)

	var reloaded models.User
	suite.db.First(&reloaded, existing.ID)
	assert.Equal(suite.T(), models.UserStateDeleted, reloaded.State)
}

func (suite *UserServiceTestSuite) TestGrantAdminIfNeeded_Delegates() {
	existing := suite.createTestUser("user@example.com", models.UserStateActive)

	err := suite.service.GrantAdminIfNeeded(existing.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), []uint64{existing.ID}, suite.credentials.grantedUserIDs)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
