package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNotEnoughMoney = errors.New("not enough money")
	ErrUsernameTaken  = errors.New("username taken")
	ErrInvalidRole    = errors.New("invalid role")
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ParseRole accepts the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

type Account struct {
	ID       uint64
	Username string
	Role     Role
	Balance  int64 // minor units
}

// Accounts is the account store. Methods taking a *sql.Tx run inside the
// caller's transaction; GetForUpdate holds the row lock until it ends.
type Accounts interface {
	Get(ctx context.Context, userID uint64) (Account, error)
	Create(ctx context.Context, username string, role Role) (Account, error)
	GetForUpdate(tx *sql.Tx, userID uint64) (Account, error)
	Credit(tx *sql.Tx, userID uint64, amount int64) error
	Debit(tx *sql.Tx, userID uint64, amount int64) error
	ResetBalance(tx *sql.Tx, userID uint64) error
}
