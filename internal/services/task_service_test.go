package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

type TaskServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *TaskService
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())

	taskRepo := repository.NewTaskRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)
	audit := NewAuditLogger(repository.NewActivityLogRepository(s.db))

	s.svc = NewTaskService(taskRepo, userRepo, audit)
	s.svc.SetClock(fixedClock(testNow))

	seedUser(s.T(), s.db, "U250001", "admin", models.RoleAdmin, models.UserStatusActive)
	seedUser(s.T(), s.db, "U250002", "alice", models.RoleMember, models.UserStatusActive)
	seedUser(s.T(), s.db, "U250003", "bob", models.RoleMember, models.UserStatusActive)
	seedUser(s.T(), s.db, "U250004", "carol", models.RoleMember, models.UserStatusInactive)
}

func (s *TaskServiceTestSuite) validInput() CreateTaskInput {
	return CreateTaskInput{
		Title:       "Quarterly report",
		Description: "Numbers for Q2",
		AssigneeIDs: []string{"U250002", "U250003"},
		Deadline:    testNow.AddDate(0, 0, 7),
		Priority:    models.TaskPriorityHigh,
		CreatorID:   "U250001",
	}
}

func (s *TaskServiceTestSuite) TestCreateTaskAllocatesFormattedIDs() {
	task, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)
	s.Equal("T250001", task.TaskID)
	s.Equal(models.TaskStatusTodo, task.Status)
	s.Len(task.Assignments, 2)

	input := s.validInput()
	input.Title = "Follow-up"
	second, err := s.svc.CreateTask(input)
	s.Require().NoError(err)
	s.Equal("T250002", second.TaskID)

	var entries []models.ActivityLog
	s.Require().NoError(s.db.Find(&entries).Error)
	s.Require().Len(entries, 2)
	s.Equal("U250001", entries[0].UserID)
	s.Contains(entries[0].Action, "T250001")
}

func (s *TaskServiceTestSuite) TestCreateTaskDefaultsPriorityAndStatus() {
	input := s.validInput()
	input.Priority = ""
	input.Status = ""

	task, err := s.svc.CreateTask(input)
	s.Require().NoError(err)
	s.Equal(models.TaskPriorityMedium, task.Priority)
	s.Equal(models.TaskStatusTodo, task.Status)
}

func (s *TaskServiceTestSuite) TestCreateTaskCollapsesDuplicateAssignees() {
	input := s.validInput()
	input.AssigneeIDs = []string{"U250002", "U250002", ""}

	task, err := s.svc.CreateTask(input)
	s.Require().NoError(err)
	s.Len(task.Assignments, 1)
}

func (s *TaskServiceTestSuite) TestCreateTaskValidation() {
	input := s.validInput()
	input.Title = "   "
	_, err := s.svc.CreateTask(input)
	s.ErrorIs(err, ErrTitleRequired)

	input = s.validInput()
	input.AssigneeIDs = nil
	_, err = s.svc.CreateTask(input)
	s.ErrorIs(err, ErrNoAssignees)

	input = s.validInput()
	input.Priority = "urgent"
	_, err = s.svc.CreateTask(input)
	s.ErrorIs(err, ErrInvalidPriority)

	input = s.validInput()
	input.Status = "done"
	_, err = s.svc.CreateTask(input)
	s.ErrorIs(err, ErrInvalidStatus)

	input = s.validInput()
	input.Deadline = testNow.AddDate(0, 0, -1)
	_, err = s.svc.CreateTask(input)
	s.ErrorIs(err, ErrDeadlinePast)
}

func (s *TaskServiceTestSuite) TestCreateTaskAcceptsDeadlineToday() {
	input := s.validInput()
	// Earlier on the same calendar day than "now"; the day is what counts.
	input.Deadline = time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)

	task, err := s.svc.CreateTask(input)
	s.Require().NoError(err)
	s.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), task.Deadline)
}

func (s *TaskServiceTestSuite) TestCreateTaskUnknownAssigneeLeavesNothingBehind() {
	input := s.validInput()
	input.AssigneeIDs = []string{"U250002", "U259999"}

	_, err := s.svc.CreateTask(input)
	s.Require().ErrorIs(err, ErrInvalidAssignee)

	var tasks, assignments, counters int64
	s.Require().NoError(s.db.Model(&models.Task{}).Count(&tasks).Error)
	s.Require().NoError(s.db.Model(&models.TaskAssignment{}).Count(&assignments).Error)
	s.Require().NoError(s.db.Model(&models.IDCounter{}).
		Where("entity_kind = ?", models.EntityKindTask).
		Count(&counters).Error)
	s.Zero(tasks)
	s.Zero(assignments)
	s.Zero(counters)

	// The failed attempt must not have burned an identifier.
	task, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)
	s.Equal("T250001", task.TaskID)
}

func (s *TaskServiceTestSuite) TestCreateTaskRejectsInactiveAssignee() {
	input := s.validInput()
	input.AssigneeIDs = []string{"U250004"}

	_, err := s.svc.CreateTask(input)
	s.ErrorIs(err, ErrInvalidAssignee)
}

func (s *TaskServiceTestSuite) TestGetTask() {
	created, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)

	task, err := s.svc.GetTask(created.TaskID)
	s.Require().NoError(err)
	s.Equal(created.Title, task.Title)
	s.Len(task.Assignments, 2)

	_, err = s.svc.GetTask("T259999")
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestListTasksFilters() {
	first, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)

	input := s.validInput()
	input.Title = "Low priority chore"
	input.Priority = models.TaskPriorityLow
	input.AssigneeIDs = []string{"U250003"}
	_, err = s.svc.CreateTask(input)
	s.Require().NoError(err)

	priority := models.TaskPriorityHigh
	tasks, total, err := s.svc.ListTasks(ListTasksInput{Priority: &priority})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(tasks, 1)
	s.Equal(first.TaskID, tasks[0].TaskID)
}

func (s *TaskServiceTestSuite) TestUpdateTask() {
	created, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)

	title := "Quarterly report v2"
	status := models.TaskStatusInProgress
	updated, err := s.svc.UpdateTask(created.TaskID, UpdateTaskInput{
		Title:  &title,
		Status: &status,
	}, "U250001")
	s.Require().NoError(err)
	s.Equal(title, updated.Title)
	s.Equal(models.TaskStatusInProgress, updated.Status)

	empty := "  "
	_, err = s.svc.UpdateTask(created.TaskID, UpdateTaskInput{Title: &empty}, "U250001")
	s.ErrorIs(err, ErrTitleEmpty)

	_, err = s.svc.UpdateTask("T259999", UpdateTaskInput{Title: &title}, "U250001")
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteTask() {
	created, err := s.svc.CreateTask(s.validInput())
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteTask(created.TaskID, "U250001"))

	_, err = s.svc.GetTask(created.TaskID)
	s.ErrorIs(err, ErrTaskNotFound)

	s.ErrorIs(s.svc.DeleteTask("T259999", "U250001"), ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
