package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxBeginner 是 service 層開啟交易所需的最小介面，*pgxpool.Pool 可直接滿足
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}
