package policy

import (
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeSelfAccess(t *testing.T) {
	owner := Owner{UserID: 7, Role: models.RoleUser}

	for _, op := range []Operation{OperationRead, OperationUpdate, OperationDelete} {
		assert.NoError(t, Authorize(7, models.RoleUser, op, owner), "本人操作应放行: %s", op)
	}
}

func TestAuthorizeSelfAccessAdminOwner(t *testing.T) {
	// 管理员操作自己名下的资源按本人规则放行，不受管理员保护限制
	owner := Owner{UserID: 3, Role: models.RoleAdmin}
	assert.NoError(t, Authorize(3, models.RoleAdmin, OperationDelete, owner))
}

func TestAuthorizeStrangerDenied(t *testing.T) {
	owner := Owner{UserID: 7, Role: models.RoleUser}

	for _, op := range []Operation{OperationRead, OperationUpdate, OperationDelete} {
		err := Authorize(8, models.RoleUser, op, owner)
		assert.True(t, code.Is(err, code.ErrUnauthorized), "非本人非管理员应拒绝: %s", op)
	}
}

func TestAuthorizeAdminDeleteOverride(t *testing.T) {
	owner := Owner{UserID: 7, Role: models.RoleUser}

	assert.NoError(t, Authorize(1, models.RoleAdmin, OperationDelete, owner))
}

func TestAuthorizeAdminReadUpdateDenied(t *testing.T) {
	// 管理员的代办权限仅限删除
	owner := Owner{UserID: 7, Role: models.RoleUser}

	assert.True(t, code.Is(Authorize(1, models.RoleAdmin, OperationRead, owner), code.ErrUnauthorized))
	assert.True(t, code.Is(Authorize(1, models.RoleAdmin, OperationUpdate, owner), code.ErrUnauthorized))
}

func TestAuthorizeAdminProtection(t *testing.T) {
	// 属主是管理员时，其他管理员不能删除其资源
	owner := Owner{UserID: 2, Role: models.RoleAdmin}

	err := Authorize(1, models.RoleAdmin, OperationDelete, owner)
	assert.True(t, code.Is(err, code.ErrUnauthorized))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(models.RoleAdmin))
	assert.True(t, code.Is(RequireAdmin(models.RoleUser), code.ErrUnauthorized))
	assert.True(t, code.Is(RequireAdmin(models.RoleNone), code.ErrUnauthorized))
}
