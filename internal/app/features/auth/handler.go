// internal/app/features/auth/handler.go
package auth

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/apperr"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	sysauth "github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers an unknown phone and a wrong password alike.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid mobile number or password")
	// ErrAccountInactive is returned when an admin has disabled the account.
	ErrAccountInactive = apperr.Forbidden("Account is inactive. Please contact admin.")
)

const (
	msgUserNotFound   = "User not found"
	msgTooManySignups = "Too many registration attempts. Please try again later."
)

type Handler struct {
	DB      *mongo.Database
	Users   *userstore.Store
	Tokens  *sysauth.TokenManager
	Limiter *ratelimit.LoginLimiter
	// Signups throttles /register per client IP when set.
	Signups  *ratelimit.Limiter
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger

	hashCost int
}

// NewHandler constructs the auth feature handler. limiter and audit may be nil.
func NewHandler(db *mongo.Database, tokens *sysauth.TokenManager, limiter *ratelimit.LoginLimiter, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		DB:       db,
		Users:    userstore.New(db),
		Tokens:   tokens,
		Limiter:  limiter,
		AuditLog: audit,
		ErrLog:   errLog,
		Log:      logger,
		hashCost: bcrypt.DefaultCost,
	}
}

func (h *Handler) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
