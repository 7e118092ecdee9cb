package service

import "Social/models"

// CanModify 作者本人或管理员可以修改/删除
func CanModify(actor, owner *models.User) bool {
	if actor == nil || owner == nil {
		return false
	}
	return actor.Username == owner.Username || actor.Role == models.RoleAdmin
}

// CanModifyOwnerOnly 仅本人, 管理员也不例外(密码、头像)
func CanModifyOwnerOnly(actor, owner *models.User) bool {
	if actor == nil || owner == nil {
		return false
	}
	return actor.Username == owner.Username
}

// Authorize 校验失败返回 *ForbiddenError
func Authorize(actor, owner *models.User, action string, targetID int64) error {
	if CanModify(actor, owner) {
		return nil
	}
	return forbidden(actor, action, targetID)
}

func AuthorizeOwner(actor, owner *models.User, action string, targetID int64) error {
	if CanModifyOwnerOnly(actor, owner) {
		return nil
	}
	return forbidden(actor, action, targetID)
}

func forbidden(actor *models.User, action string, targetID int64) error {
	username := ""
	if actor != nil {
		username = actor.Username
	}
	return &ForbiddenError{Username: username, TargetID: targetID, Action: action}
}
