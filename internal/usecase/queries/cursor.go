package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultRecordLimit = 50
	MaxRecordLimit     = 200
	CursorVersionV1    = "v1"
)

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

// DecodeAfterCursor reverses EncodeAfterCursor. Failures are marked errs.ErrInvalidCursor.
func DecodeAfterCursor(cursor string) (*shared.RecordCursor, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode cursor"), errs.ErrInvalidCursor)
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, errs.Mark(errs.New("unsupported cursor version"), errs.ErrInvalidCursor)
	}

	parts := strings.SplitN(payload, "-", 2)
	if len(parts) != 2 {
		return nil, errs.Mark(errs.New("invalid cursor format: expected '<micros>-<uuid>'"), errs.ErrInvalidCursor)
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid cursor timestamp"), errs.ErrInvalidCursor)
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid cursor id"), errs.ErrInvalidCursor)
	}

	return &shared.RecordCursor{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecordLimit
	}
	if limit > MaxRecordLimit {
		return MaxRecordLimit
	}
	return limit
}
