package policy

import (
	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
)

// Operation 受权限控制的资源操作类型
type Operation int

const (
	OperationRead Operation = iota
	OperationUpdate
	OperationDelete
)

// String 操作名称，用于日志
func (op Operation) String() string {
	switch op {
	case OperationRead:
		return "read"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Owner 归属链解析出的资源属主
type Owner struct {
	UserID uint
	Role   models.Role
}

// Authorize 对一次资源操作做授权决策，规则按优先级依次判定：
//  1. 本人操作自己名下的资源，全部放行
//  2. 管理员可以代为删除，但属主同为管理员时拒绝
//  3. 其余一律拒绝
//
// 决策只依赖入参，不访问存储，拒绝与资源不存在是两种不同的错误。
func Authorize(actorID uint, actorRole models.Role, op Operation, owner Owner) error {
	if actorID == owner.UserID {
		return nil
	}
	if op == OperationDelete && actorRole == models.RoleAdmin {
		if owner.Role == models.RoleAdmin {
			return code.NewErrorWithMessage(code.ErrUnauthorized, "管理员不能删除其他管理员名下的数据")
		}
		return nil
	}
	return code.NewError(code.ErrUnauthorized)
}

// RequireAdmin 管理接口的角色检查
func RequireAdmin(actorRole models.Role) error {
	if actorRole != models.RoleAdmin {
		return code.NewError(code.ErrUnauthorized)
	}
	return nil
}
