package task

import "roomies-go/internal/apperr"

var (
	ErrTaskNotFound     = apperr.NotFound("task_not_found", "task not found")
	ErrEditForbidden    = apperr.Authorization("task_edit_forbidden", "only the creator or a household admin can delete this task")
	ErrAlreadyCompleted = apperr.Conflict("task_already_completed", "task is already completed")
)
