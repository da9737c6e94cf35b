// controllers/controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-postgres-orders/config"
	"go-postgres-orders/events"
	"go-postgres-orders/models"
)

// Controller pegang dependensi eksplisit; tidak ada singleton DB.
type Controller struct {
	db         *gorm.DB
	dispatcher *events.Dispatcher
	log        *zap.Logger
	cfg        *config.Config
}

func New(db *gorm.DB, dispatcher *events.Dispatcher, log *zap.Logger, cfg *config.Config) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{db: db, dispatcher: dispatcher, log: log, cfg: cfg}
}

func clauseUpdateLock() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id tidak ada di context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.New("user_id tidak valid")
	}
	return id, nil
}

// respondDomainError terjemahkan error domain ke status HTTP di boundary.
// Error bisnis tidak pernah ditelan diam-diam; error tak terduga di-log dan
// keluar sebagai pesan generik.
func (h *Controller) respondDomainError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrInvalidPriceOrQuantity),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrAlreadyPaid),
		errors.Is(err, models.ErrAlreadyFinalState),
		errors.Is(err, models.ErrConservationViolation):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": models.ErrNotFound.Error()})
	default:
		h.log.Error(fallbackMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallbackMsg})
	}
}
