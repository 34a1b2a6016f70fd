package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// InstancesController serves admin CRUD for the loanable copies.
type InstancesController struct {
	store        InstanceStore
	auditService *audit.Service
	now          func() time.Time
}

func NewInstancesController(store InstanceStore, auditService *audit.Service) *InstancesController {
	return &InstancesController{store: store, auditService: auditService, now: time.Now}
}

type instanceRequest struct {
	BookID     uint   `json:"book_id" binding:"required"`
	Imprint    string `json:"imprint"`
	DueBack    string `json:"due_back"`
	BorrowerID *uint  `json:"borrower_id"`
	Status     string `json:"status"`
}

func (req *instanceRequest) apply(instance *entities.BookInstance) error {
	due, err := parseDateField(req.DueBack)
	if err != nil {
		return errors.New("due_back must be a YYYY-MM-DD date")
	}
	status := entities.LoanStatus(req.Status)
	if req.Status != "" && !status.Valid() {
		return errors.New("status must be one of: m, o, a, r")
	}

	instance.BookID = req.BookID
	instance.Imprint = req.Imprint
	instance.DueBack = due
	instance.BorrowerID = req.BorrowerID
	if req.Status != "" {
		instance.Status = status
	}
	return nil
}

func (ctrl *InstancesController) row(instance entities.BookInstance) gin.H {
	bookLabel := ""
	if instance.Book != nil {
		bookLabel = instance.Book.DisplayLabel()
	}
	borrower := ""
	if instance.Borrower != nil {
		borrower = instance.Borrower.DisplayLabel()
	}
	return gin.H{
		"id":           instance.ID,
		"book":         bookLabel,
		"status":       instance.Status,
		"status_label": instance.Status.Label(),
		"borrower":     borrower,
		"due_back":     instance.DueBack,
		"is_overdue":   instance.IsOverdue(ctrl.now()),
	}
}

// List returns copies ordered by due date, optionally narrowed by the
// registry's list filters: ?status=o and ?due_before= / ?due_after=
// (both YYYY-MM-DD, matching the due_back filter).
// GET /admin/instances
func (ctrl *InstancesController) List(c *gin.Context) {
	var filter instances.Filter

	if status := c.Query("status"); status != "" {
		if !admin.HasFilter(admin.EntityBookInstance, "status") {
			respondBadRequest(c, "filtering by status is not enabled")
			return
		}
		filter.Status = entities.LoanStatus(status)
		if !filter.Status.Valid() {
			respondBadRequest(c, "status must be one of: m, o, a, r")
			return
		}
	}

	dueBefore, ok := parseDateQuery(c, "due_before")
	if !ok {
		return
	}
	dueAfter, ok := parseDateQuery(c, "due_after")
	if !ok {
		return
	}
	filter.DueBefore = dueBefore
	filter.DueAfter = dueAfter

	all, err := ctrl.store.GetAll(filter)
	if err != nil {
		respondInternalError(c, err, "list instances")
		return
	}

	cfg, _ := admin.Get(admin.EntityBookInstance)
	rows := make([]gin.H, 0, len(all))
	for _, instance := range all {
		rows = append(rows, ctrl.row(instance))
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Overdue returns the copies whose due date has passed, ordered by due
// date. Overdue is computed against the current date on every request.
// GET /admin/instances/overdue
func (ctrl *InstancesController) Overdue(c *gin.Context) {
	all, err := ctrl.store.GetOverdue(ctrl.now())
	if err != nil {
		respondInternalError(c, err, "list overdue instances")
		return
	}

	cfg, _ := admin.Get(admin.EntityBookInstance)
	rows := make([]gin.H, 0, len(all))
	for _, instance := range all {
		rows = append(rows, ctrl.row(instance))
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one copy.
// GET /admin/instances/:id
func (ctrl *InstancesController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book instance")
			return
		}
		respondInternalError(c, err, "get instance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instance":      instance,
		"display_label": instance.DisplayLabel(),
		"is_overdue":    instance.IsOverdue(ctrl.now()),
	})
}

// Create adds a copy of an existing book. The copy's UUID is assigned
// here and never changes.
// POST /admin/instances
func (ctrl *InstancesController) Create(c *gin.Context) {
	var req instanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book_id is required")
		return
	}

	var instance entities.BookInstance
	if err := req.apply(&instance); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := ctrl.store.Create(&instance); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondBadRequest(c, "referenced book does not exist")
			return
		}
		respondInternalError(c, err, "create instance")
		return
	}

	ctrl.logChange(c, &instance, entities.AuditActionCreate)

	created, err := ctrl.store.GetByID(instance.ID)
	if err != nil {
		respondCreated(c, instance)
		return
	}
	respondCreated(c, created)
}

// Update saves changes to a copy. The id in the path is authoritative;
// the UUID itself cannot be changed.
// PUT /admin/instances/:id
func (ctrl *InstancesController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req instanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book_id is required")
		return
	}

	instance, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book instance")
			return
		}
		respondInternalError(c, err, "get instance")
		return
	}

	if err := req.apply(instance); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	instance.Book = nil
	instance.Borrower = nil

	if err := ctrl.store.Update(instance); err != nil {
		respondInternalError(c, err, "update instance")
		return
	}

	ctrl.logChange(c, instance, entities.AuditActionUpdate)

	updated, err := ctrl.store.GetByID(id)
	if err != nil {
		c.JSON(http.StatusOK, instance)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// MarkReturned closes out a loan: the copy becomes available and its
// due date and borrower are cleared. Gated by the can_mark_returned
// permission, which is distinct from generic edit rights.
// POST /admin/instances/:id/return
func (ctrl *InstancesController) MarkReturned(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := ctrl.store.MarkReturned(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book instance")
			return
		}
		respondInternalError(c, err, "mark instance returned")
		return
	}

	ctrl.logChange(c, instance, entities.AuditActionReturn)
	c.JSON(http.StatusOK, gin.H{
		"instance":      instance,
		"display_label": instance.DisplayLabel(),
	})
}

// Delete removes a copy.
// DELETE /admin/instances/:id
func (ctrl *InstancesController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := ctrl.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book instance")
			return
		}
		respondInternalError(c, err, "get instance")
		return
	}

	if err := ctrl.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete instance")
		return
	}

	ctrl.logChange(c, instance, entities.AuditActionDelete)
	respondSuccess(c, "book instance deleted")
}

func (ctrl *InstancesController) logChange(c *gin.Context, instance *entities.BookInstance, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityBookInstance,
		instance.ID.String(), instance.DisplayLabel(), action, nil)
}
