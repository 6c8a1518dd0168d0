package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/utils"
)

// AuditService records mutations and authentication events in audit_logs
type AuditService struct {
	db      database.DB
	enabled bool
}

// NewAuditService creates a new audit service. A disabled service accepts
// every call and writes nothing.
func NewAuditService(db database.DB, enabled bool) *AuditService {
	return &AuditService{
		db:      db,
		enabled: enabled,
	}
}

// RequestMeta identifies where a request came from
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuditEvent represents one row in audit_logs
type AuditEvent struct {
	UserID     *uuid.UUID // nil before authentication succeeds
	Action     string
	EntityType string
	EntityID   string // empty when no single entity is affected
	Meta       RequestMeta
	Details    map[string]interface{}
}

// LogItineraryCreated records a new itinerary item
func (s *AuditService) LogItineraryCreated(userID uuid.UUID, itineraryID, attractionID int64, startTime time.Time, meta RequestMeta) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "itinerary_create",
		EntityType: "itinerary",
		EntityID:   strconv.FormatInt(itineraryID, 10),
		Meta:       meta,
		Details: map[string]interface{}{
			"attraction_id": attractionID,
			"starttime":     startTime.UTC().Format(time.RFC3339),
		},
	})
}

// LogAttractionUpdated records a rename or move of an attraction
func (s *AuditService) LogAttractionUpdated(userID uuid.UUID, attractionID int64, name string, areaID int64, meta RequestMeta) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "attraction_update",
		EntityType: "attraction",
		EntityID:   strconv.FormatInt(attractionID, 10),
		Meta:       meta,
		Details: map[string]interface{}{
			"name":    name,
			"area_id": areaID,
		},
	})
}

// LogAttractionDeleted records removal of an attraction
func (s *AuditService) LogAttractionDeleted(userID uuid.UUID, attractionID int64, meta RequestMeta) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "attraction_delete",
		EntityType: "attraction",
		EntityID:   strconv.FormatInt(attractionID, 10),
		Meta:       meta,
	})
}

// LogRegistration records a new customer account
func (s *AuditService) LogRegistration(userID uuid.UUID, username string, customerID int64, meta RequestMeta) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "register",
		EntityType: "user",
		EntityID:   userID.String(),
		Meta:       meta,
		Details: map[string]interface{}{
			"username":    username,
			"customer_id": customerID,
		},
	})
}

// LogLogin records a login attempt. userID is nil when the username is unknown.
func (s *AuditService) LogLogin(userID *uuid.UUID, username string, success bool, reason string, meta RequestMeta) error {
	details := map[string]interface{}{
		"username": username,
		"success":  success,
	}
	if reason != "" {
		details["reason"] = reason
	}

	entityID := ""
	if userID != nil {
		entityID = userID.String()
	}

	return s.logEvent(AuditEvent{
		UserID:     userID,
		Action:     "login",
		EntityType: "user",
		EntityID:   entityID,
		Meta:       meta,
		Details:    details,
	})
}

// logEvent is the internal method that writes to the audit_logs table
func (s *AuditService) logEvent(event AuditEvent) error {
	if !s.enabled {
		return nil
	}

	if event.Details == nil {
		event.Details = make(map[string]interface{})
	}
	event.Details["device_info"] = utils.ParseUserAgent(event.Meta.UserAgent)

	details, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	var entityID *string
	if event.EntityID != "" {
		entityID = &event.EntityID
	}

	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err = s.db.Exec(
		query,
		event.UserID,
		event.Action,
		event.EntityType,
		entityID,
		event.Meta.IPAddress,
		event.Meta.UserAgent,
		string(details),
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}

	return nil
}

// CleanupOldAuditLogs removes audit logs older than the specified duration
func (s *AuditService) CleanupOldAuditLogs(olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	result, err := s.db.Exec(`DELETE FROM audit_logs WHERE created_at < $1`, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old audit logs: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
