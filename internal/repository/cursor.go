package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

const (
	timeFormat = time.RFC3339Nano

	DefaultPageNum = 10
	PageMinNum     = 1
	PageMaxNum     = 50
)

// EncodeCursor encodes the boundary post's (createdAt, id) pair into an
// opaque pagination token. The id carries the tiebreak for posts created
// in the same instant, so the composite order stays total.
func EncodeCursor(t time.Time, id int64) string {
	raw := fmt.Sprintf("%s|%d", t.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor is the inverse of EncodeCursor. A token that does not
// decode to a (timestamp, id) pair yields ErrBadParamInput.
func DecodeCursor(cursor string) (time.Time, int64, error) {
	byt, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, domain.ErrBadParamInput
	}

	parts := strings.SplitN(string(byt), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, domain.ErrBadParamInput
	}

	t, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, domain.ErrBadParamInput
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return time.Time{}, 0, domain.ErrBadParamInput
	}

	return t, id, nil
}

// PageVerify clamps the page size to the default when it is not a
// positive integer within bounds.
func PageVerify(num *int64) {
	if *num < PageMinNum || *num > PageMaxNum {
		*num = DefaultPageNum
	}
}
