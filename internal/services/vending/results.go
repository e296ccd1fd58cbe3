package vending

import (
	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/repos/accounts"
)

type DepositResult struct {
	AccountID uint64
	Role      accounts.Role
	Balance   int64
}

type PurchaseResult struct {
	ProductID   uint64
	ProductName string
	Quantity    int64
	TotalSpent  int64
	Change      coins.Change
}

// ResetResult carries the coins handed back; empty for a zero balance.
type ResetResult struct {
	Change coins.Change
}
