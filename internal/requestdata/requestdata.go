package requestdata

import (
  "context"
  "github.com/google/uuid"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData carries the authenticated caller's identity for the lifetime
// of a single request. Authorization checks read it from context; nothing
// in the codebase keeps a global "current user".
type RequestData struct {
  TokenString       string
  RefreshToken      string
  UserID            uuid.UUID
}
