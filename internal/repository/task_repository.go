package repository

import (
	"gorm.io/gorm"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
	"tasktracker/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithAssignments allocates the next task ID for the year and inserts
// the task plus one assignment row per assignee. Everything commits as one
// unit: any failure rolls back the assignments, the task row and the counter
// increment, so the caller never observes a partial task.
func (r *GormTaskRepository) CreateWithAssignments(task *models.Task, assigneeIDs []string, yearKey string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, models.EntityKindTask, yearKey)
		if err != nil {
			return err
		}
		task.TaskID = utils.FormatTaskID(yearKey, seq)

		if err := tx.Create(task).Error; err != nil {
			return err
		}

		assignments := make([]models.TaskAssignment, len(assigneeIDs))
		for i, userID := range assigneeIDs {
			assignments[i] = models.TaskAssignment{
				TaskID: task.TaskID,
				UserID: userID,
			}
		}

		return tx.Create(&assignments).Error
	})
}

// FindByTaskID finds a task by its business identifier with optional preloading
func (r *GormTaskRepository) FindByTaskID(taskID string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("task_id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.task_id").
			Where("task_assignments.user_id = ?", *filter.AssigneeID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Assignments").Preload("Assignments.User").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task and cascades to its assignments
func (r *GormTaskRepository) Delete(taskID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Where("task_id = ?", taskID).Delete(&models.Task{}).Error
	})
}

// ListActiveWithAssignees returns every todo/inProgress task with assignments preloaded
func (r *GormTaskRepository) ListActiveWithAssignees() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Assignments").
		Where("status IN ?", []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
