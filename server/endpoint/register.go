package endpoint

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authgate/errors"
	"github.com/skillsenselab/authgate/logger"
	"github.com/skillsenselab/authgate/user"
	"github.com/skillsenselab/authgate/validation"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with the default role and logs it straight
// in, issuing the same token pair as a successful login.
func (a *Auth) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Validation("Name, email, and password are required."))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.deps.Metrics.RecordRegister(ctx, "invalid_input")
		respondError(c, errors.Validation("Name, email, and password are required."))
		return
	}

	if !validation.IsEmail(req.Email) {
		a.deps.Metrics.RecordRegister(ctx, "invalid_input")
		respondError(c, errors.Validation("Invalid email format."))
		return
	}

	if err := a.deps.Policy.Validate(req.Password); err != nil {
		a.deps.Metrics.RecordRegister(ctx, "invalid_input")
		respondError(c, err)
		return
	}

	hash, err := a.deps.Hasher.Hash(req.Password)
	if err != nil {
		respondError(c, errors.Internal(err))
		return
	}

	u := &user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleStandard,
	}
	if err := a.deps.Users.Create(ctx, u); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			a.deps.Metrics.RecordRegister(ctx, "email_taken")
			respondError(c, errors.AlreadyExists("user"))
			return
		}
		respondError(c, errors.Internal(err))
		return
	}

	body, err := a.issuePair(c, u)
	if err != nil {
		respondError(c, err)
		return
	}

	a.deps.Metrics.RecordRegister(ctx, "success")
	a.log.Info("user registered", logger.Fields(
		logger.FieldUserID, u.ID,
		logger.FieldEmail, u.Email,
	))
	c.JSON(http.StatusCreated, body)
}
