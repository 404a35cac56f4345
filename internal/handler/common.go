package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-event-platform/internal/model"
	apperrors "go-event-platform/pkg/app_errors"
	"go-event-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// ParamInt64 解析路徑參數為 int64，失敗時直接回 400
func ParamInt64(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid path parameter: " + name,
		})
		return 0, false
	}
	return value, true
}

// QueryInt64 解析必填查詢參數為 int64，缺漏或格式錯誤時回 400
func QueryInt64(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameter: " + name,
		})
		return 0, false
	}
	return value, true
}

// Paging from/size 查詢參數，預設 0/10
func Paging(c *gin.Context) (int, int) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		from = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		size = 10
	}
	return from, size
}

func queryInt64List(c *gin.Context, name string) []int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]int64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	return values
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := model.ParseDateTime(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidInput
	}
	return &parsed, nil
}

// handleError 將服務層的哨兵錯誤對應到 HTTP 狀態碼
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrRequestNotFound),
		errors.Is(err, apperrors.ErrCompilationNotFound),
		errors.Is(err, apperrors.ErrSubscriptionNotFound):
		log.Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrNotInitiator),
		errors.Is(err, apperrors.ErrInvalidEventDate),
		errors.Is(err, apperrors.ErrDuplicateRequest),
		errors.Is(err, apperrors.ErrSelfParticipation),
		errors.Is(err, apperrors.ErrEventNotPublished),
		errors.Is(err, apperrors.ErrParticipantLimitReached),
		errors.Is(err, apperrors.ErrEventStateConflict),
		errors.Is(err, apperrors.ErrEventStartTooSoon),
		errors.Is(err, apperrors.ErrRequestNotPending),
		errors.Is(err, apperrors.ErrCategoryInUse),
		errors.Is(err, apperrors.ErrPrivateAccount),
		errors.Is(err, apperrors.ErrSubscriptionConflict),
		errors.Is(err, apperrors.ErrNoPendingSubscriptions),
		errors.Is(err, apperrors.ErrUnsupportedStatus),
		errors.Is(err, apperrors.ErrUnsupportedStateAction),
		errors.Is(err, apperrors.ErrInvalidTimeRange):
		log.Warn("Business rule conflict")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
