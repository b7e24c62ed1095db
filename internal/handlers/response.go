package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/ripple-backend/internal/requestdata"
  "github.com/yungbote/ripple-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service sentinels onto statuses. Authorization
// failures stay a generic "forbidden" so responses never leak which
// predicate refused the request.
func RespondServiceError(c *gin.Context, err error) {
  switch {
  case errors.Is(err, services.ErrForbidden):
    c.JSON(http.StatusForbidden, ErrorEnvelope{Error: APIError{Message: "forbidden", Code: "forbidden"}})
  case errors.Is(err, services.ErrNotFound):
    c.JSON(http.StatusNotFound, ErrorEnvelope{Error: APIError{Message: "not found", Code: "not_found"}})
  case errors.Is(err, services.ErrAlreadyClaimed):
    c.JSON(http.StatusConflict, ErrorEnvelope{Error: APIError{Message: "conflict", Code: "conflict"}})
  case errors.Is(err, services.ErrInvalidInput):
    RespondError(c, http.StatusBadRequest, "invalid_input", err)
  default:
    c.JSON(http.StatusInternalServerError, ErrorEnvelope{Error: APIError{Message: "internal error", Code: "internal"}})
  }
}

// currentUserID returns the authenticated caller, or uuid.Nil for anonymous
// requests on optional-auth routes.
func currentUserID(c *gin.Context) uuid.UUID {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    return uuid.Nil
  }
  return rd.UserID
}
