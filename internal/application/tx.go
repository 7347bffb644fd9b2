// Package application 用例层:编排领域服务,控制事务边界
package application

import "context"

// TxManager 事务边界(由mysql.TxManager实现)
// fn返回error时回滚,fn内的仓储操作通过ctx共享同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
