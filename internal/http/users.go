package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/auth"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// UsersController manages the accounts that copies can be loaned to.
type UsersController struct {
	store        UserStore
	authService  *auth.Service
	auditService *audit.Service
}

func NewUsersController(store UserStore, authService *auth.Service, auditService *audit.Service) *UsersController {
	return &UsersController{store: store, authService: authService, auditService: auditService}
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// List returns all accounts ordered by username.
// GET /admin/users
func (ctrl *UsersController) List(c *gin.Context) {
	users, err := ctrl.store.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}

	cfg, _ := admin.Get(admin.EntityUser)
	rows := make([]gin.H, 0, len(users))
	for _, user := range users {
		rows = append(rows, gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
	c.JSON(http.StatusOK, ListResponse{Columns: cfg.ListDisplay, Count: len(rows), Results: rows})
}

// Get returns one account.
// GET /admin/users/:id
func (ctrl *UsersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create adds an account. The role defaults to member, the borrower
// role that book copies reference.
// POST /admin/users
func (ctrl *UsersController) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username, email and password are required")
		return
	}

	role := entities.UserRole(req.Role)
	if req.Role == "" {
		role = entities.UserRoleMember
	}

	user, err := ctrl.authService.CreateUser(req.Username, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			respondConflict(c, err.Error())
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	ctrl.logChange(c, user, entities.AuditActionCreate)
	respondCreated(c, user)
}

// Delete removes an account. Copies loaned to it stay on loan with the
// borrower reference cleared.
// DELETE /admin/users/:id
func (ctrl *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	if err := ctrl.store.DeleteUser(id); err != nil {
		respondInternalError(c, err, "delete user")
		return
	}

	ctrl.logChange(c, user, entities.AuditActionDelete)
	respondSuccess(c, "user deleted")
}

func (ctrl *UsersController) logChange(c *gin.Context, user *entities.User, action entities.AuditAction) {
	if ctrl.auditService == nil {
		return
	}
	ctrl.auditService.LogChange(GetUserID(c), admin.EntityUser,
		strconv.FormatUint(uint64(user.ID), 10), user.DisplayLabel(), action, nil)
}
