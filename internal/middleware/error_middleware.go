package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{apperrors.ErrMissingStudentInput, http.StatusBadRequest, dto.ErrorCodeMissingStudentInput, "Either studentId or subjectGrades is required"},
	{apperrors.ErrNoMatchingSubjects, http.StatusUnprocessableEntity, dto.ErrorCodeNoMatchingSubjects, "None of the provided subjects are known"},
	{apperrors.ErrBatchTooLarge, http.StatusBadRequest, dto.ErrorCodeBatchTooLarge, "Ingestion batch is too large"},

	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrUniversityNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "University not found"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrSubjectNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Subject not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrUniversityAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "University already exists"},
	{apperrors.ErrCourseAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrSlugConflict, http.StatusConflict, dto.ErrorCodeConflict, "Slug already in use"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidRecord, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid record"},
	{apperrors.ErrInvalidFormat, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid format"},
	{apperrors.ErrUnsupportedFormat, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unsupported format"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
}

// HandleAPIError maps an error returned by a service onto the error response envelope.
// A CustomError's message, code and details override the defaults of its sentinel.
func HandleAPIError(c *gin.Context, err error) {
	mapping := errorMapping{status: http.StatusInternalServerError, code: dto.ErrorCodeInternalServer, message: "Internal server error"}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	detail := dto.NewErrorDetail(mapping.code, mapping.message)

	var custom *apperrors.CustomError
	switch {
	case mapping.status >= http.StatusInternalServerError:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
	case errors.As(err, &custom):
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Code != "" {
			detail.Code = dto.ErrorCode(custom.Code)
		}
		if custom.Details != nil {
			detail.Details = custom.Details
		}
	case err.Error() != mapping.target.Error():
		// wrapped sentinels carry the specifics after the sentinel text
		detail.Details = err.Error()
	}

	c.AbortWithStatusJSON(mapping.status, dto.NewErrorResponse(detail))
}
