package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrInviteCodeTaken  = errors.New("invite code already in use")
	ErrAlreadyMember    = errors.New("already a member of community")
	ErrCommunityFull    = errors.New("community member limit reached")
	ErrChannelLimit     = errors.New("community channel limit reached")
	ErrDuplicateChannel = errors.New("channel name already in use")
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique constraint
// violation on the named constraint or index.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}
