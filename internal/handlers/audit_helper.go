package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kennywood/park-api/internal/services"
	"github.com/kennywood/park-api/internal/utils"
	"github.com/sirupsen/logrus"
)

// logAuditError is a helper to log audit service errors without failing the request
func logAuditError(operation string, err error) {
	if err != nil {
		logrus.WithError(err).WithField("operation", operation).Error("Audit write failed")
	}
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IPAddress: utils.GetRealIP(c),
		UserAgent: utils.GetUserAgent(c),
	}
}

// Helper functions to log audit events with error handling

func (h *ItineraryHandler) safeLogItineraryCreated(c *gin.Context, userID uuid.UUID, itineraryID, attractionID int64, startTime time.Time) {
	logAuditError("LogItineraryCreated", h.auditService.LogItineraryCreated(userID, itineraryID, attractionID, startTime, requestMeta(c)))
}

func (h *ItineraryHandler) safeLogAttractionUpdated(c *gin.Context, userID uuid.UUID, attractionID int64, name string, areaID int64) {
	logAuditError("LogAttractionUpdated", h.auditService.LogAttractionUpdated(userID, attractionID, name, areaID, requestMeta(c)))
}

func (h *ItineraryHandler) safeLogAttractionDeleted(c *gin.Context, userID uuid.UUID, attractionID int64) {
	logAuditError("LogAttractionDeleted", h.auditService.LogAttractionDeleted(userID, attractionID, requestMeta(c)))
}

func (h *AuthHandler) safeLogRegistration(c *gin.Context, userID uuid.UUID, username string, customerID int64) {
	logAuditError("LogRegistration", h.auditService.LogRegistration(userID, username, customerID, requestMeta(c)))
}

func (h *AuthHandler) safeLogLogin(c *gin.Context, userID *uuid.UUID, username string, success bool, reason string) {
	logAuditError("LogLogin", h.auditService.LogLogin(userID, username, success, reason, requestMeta(c)))
}
