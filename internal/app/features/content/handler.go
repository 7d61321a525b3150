// internal/app/features/content/handler.go
package content

import (
	uierrors "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	committeestore "github.com/mejbaurrahman/JHF/internal/app/store/committee"
	gallerystore "github.com/mejbaurrahman/JHF/internal/app/store/gallery"
	sitecontentstore "github.com/mejbaurrahman/JHF/internal/app/store/sitecontent"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public site surface: site content sections, the
// committee list and the gallery.
type Handler struct {
	DB        *mongo.Database
	Site      *sitecontentstore.Store
	Committee *committeestore.Store
	Gallery   *gallerystore.Store
	// Images, when set, receives deletes for gallery images this
	// server uploaded.
	Images   uploads.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, images uploads.Store, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		DB:        db,
		Site:      sitecontentstore.New(db),
		Committee: committeestore.New(db),
		Gallery:   gallerystore.New(db),
		Images:    images,
		AuditLog:  audit,
		ErrLog:    errLog,
		Log:       logger,
	}
}
