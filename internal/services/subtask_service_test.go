package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"
)

// SubtaskServiceTestSuite defines the test suite for SubtaskService
type SubtaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *SubtaskService

	owner *models.User
	other *models.User
	task  *models.Task
}

// SetupTest runs before each test
func (suite *SubtaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{}, &models.Subtask{})
	suite.Require().NoError(err)

	suite.service = NewSubtaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewSubtaskRepository(suite.db),
	)

	suite.owner = &models.User{Name: "Owner", Email: "owner@example.com", State: models.UserStateActive}
	suite.db.Create(suite.owner)
	suite.other = &models.User{Name: "Other", Email: "other@example.com", State: models.UserStateActive}
	suite.db.Create(suite.other)
	suite.task = &models.Task{Name: "Parent", State: models.TaskStatePending, UserID: suite.owner.ID}
	suite.db.Create(suite.task)
}

// TearDownTest runs after each test
func (suite *SubtaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubtaskServiceTestSuite) createTestSubtask(name string) *models.Subtask {
	subtask := &models.Subtask{Name: name, State: models.TaskStatePending, TaskID: suite.task.ID}
	suite.db.Create(subtask)
	return subtask
}

func (suite *SubtaskServiceTestSuite) asOwner() auth.Caller {
	return auth.Caller{UserID: suite.owner.ID}
}

func (suite *SubtaskServiceTestSuite) asOther() auth.Caller {
	return auth.Caller{UserID: suite.other.ID}
}

func (suite *SubtaskServiceTestSuite) TestListForTask_Success() {
	suite.createTestSubtask("One")
	suite.createTestSubtask("Two")

	subtasks, err := suite.service.ListForTask(suite.asOwner(), suite.task.ID)

	suite.Require().NoError(err)
	assert.Len(suite.T(), subtasks, 2)
}

func (suite *SubtaskServiceTestSuite) TestListForTask_ForeignTaskHiddenAsNotFound() {
	suite.createTestSubtask("One")

	_, err := suite.service.ListForTask(suite.asOther(), suite.task.ID)

	assert.True(suite.T(), apperrors.IsNotFound(err))
	assert.NotErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *SubtaskServiceTestSuite) TestListForTask_AbsentTaskNotFound() {
	_, err := suite.service.ListForTask(suite.asOwner(), 12345)

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *SubtaskServiceTestSuite) TestGetByID_Success() {
	created := suite.createTestSubtask("One")

	subtask, err := suite.service.GetByID(suite.asOwner(), created.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), created.ID, subtask.ID)
}

// Ownership of a subtask is resolved through the parent task; a mismatch is
// indistinguishable from absence.
func (suite *SubtaskServiceTestSuite) TestGetByID_ForeignSubtaskHiddenAsNotFound() {
	created := suite.createTestSubtask("One")

	_, err := suite.service.GetByID(suite.asOther(), created.ID)

	assert.True(suite.T(), apperrors.IsNotFound(err))
	assert.NotErrorIs(suite.T(), err, apperrors.ErrForbidden)
}

func (suite *SubtaskServiceTestSuite) TestGetByID_AdminSeesForeignSubtask() {
	created := suite.createTestSubtask("One")

	admin := auth.Caller{UserID: 999, IsAdmin: true}
	subtask, err := suite.service.GetByID(admin, created.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), created.ID, subtask.ID)
}

func (suite *SubtaskServiceTestSuite) TestAdd_StartsPending() {
	subtask, err := suite.service.Add(suite.asOwner(), suite.task.ID, CreateSubtaskInput{Name: "New"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatePending, subtask.State)
	assert.Equal(suite.T(), suite.task.ID, subtask.TaskID)
}

func (suite *SubtaskServiceTestSuite) TestAdd_ForeignTaskHiddenAsNotFound() {
	_, err := suite.service.Add(suite.asOther(), suite.task.ID, CreateSubtaskInput{Name: "New"})

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *SubtaskServiceTestSuite) TestUpdate_ReplacesNameAndState() {
	created := suite.createTestSubtask("Old")

	subtask, err := suite.service.Update(suite.asOwner(), created.ID, UpdateSubtaskInput{
		Name:  "New",
		State: models.TaskStateDone,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "New", subtask.Name)
	assert.Equal(suite.T(), models.TaskStateDone, subtask.State)
}

func (suite *SubtaskServiceTestSuite) TestUpdate_ForeignSubtaskHiddenAsNotFound() {
	created := suite.createTestSubtask("Old")

	_, err := suite.service.Update(suite.asOther(), created.ID, UpdateSubtaskInput{Name: "New"})

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func (suite *SubtaskServiceTestSuite) TestDelete_Success() {
	created := suite.createTestSubtask("One")

	err := suite.service.Delete(suite.asOwner(), created.ID)

	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Subtask{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *SubtaskServiceTestSuite) TestDelete_AbsentNotFound() {
	err := suite.service.Delete(suite.asOwner(), 12345)

	assert.True(suite.T(), apperrors.IsNotFound(err))
}

func TestSubtaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubtaskServiceTestSuite))
}
