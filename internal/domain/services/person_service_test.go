package services

import (
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPersonService(t *testing.T) (InterfacePersonService, *gorm.DB, *fakePictureStore) {
	t.Helper()
	db := newTestDB(t)
	pictures := newFakePictureStore()
	resolver := NewOwnershipResolver(db)
	return NewPersonService(db, resolver, pictures), db, pictures
}

func TestCreatePersonWithResidence(t *testing.T) {
	svc, db, pictures := newPersonService(t)
	user := seedUser(t, db, "johndoe1", models.RoleUser)

	input := personCreateInput()
	input.Residence = &PersonResidenceInput{
		City:        "Riga",
		Street:      "Brivibas",
		HouseNumber: "10",
	}

	dto, err := svc.CreatePerson(user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "John", dto.FirstName)
	require.NotNil(t, dto.Residence)
	assert.Equal(t, "Riga", dto.Residence.City)

	// 档案与地址在同一事务中写入
	var person models.Person
	require.NoError(t, db.Preload("Residence").First(&person, dto.ID).Error)
	require.NotNil(t, person.Residence)
	assert.Equal(t, person.ID, person.Residence.PersonID)
	assert.NotEmpty(t, person.ProfilePicturePath)

	_, err = pictures.Load(person.ProfilePicturePath)
	assert.NoError(t, err, "头像应已落盘")
}

func TestCreatePersonValidation(t *testing.T) {
	svc, db, _ := newPersonService(t)
	user := seedUser(t, db, "johndoe1", models.RoleUser)

	missingName := personCreateInput()
	missingName.FirstName = "  "
	_, err := svc.CreatePerson(user.ID, missingName)
	assert.True(t, code.Is(err, code.ErrValidation))

	badDate := personCreateInput()
	badDate.DateOfBirth = "01/05/1990"
	_, err = svc.CreatePerson(user.ID, badDate)
	assert.True(t, code.Is(err, code.ErrValidation))

	badGender := personCreateInput()
	badGender.Gender = "robot"
	_, err = svc.CreatePerson(user.ID, badGender)
	assert.True(t, code.Is(err, code.ErrValidation))

	noPicture := personCreateInput()
	noPicture.Picture = nil
	_, err = svc.CreatePerson(user.ID, noPicture)
	assert.True(t, code.Is(err, code.ErrValidation))
}

func TestCreatePersonUserNotFound(t *testing.T) {
	svc, _, _ := newPersonService(t)

	_, err := svc.CreatePerson(999, personCreateInput())
	assert.True(t, code.Is(err, code.ErrUserNotFound))
}

func TestGetPersonOwnership(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	person := seedPerson(t, db, owner.ID, "")

	dto, err := svc.GetPersonByID(owner.ID, models.RoleUser, person.ID)
	require.NoError(t, err)
	assert.Equal(t, person.ID, dto.ID)

	_, err = svc.GetPersonByID(stranger.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	// 管理员在普通接口上同样不能读他人档案
	_, err = svc.GetPersonByID(admin.ID, models.RoleAdmin, person.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	_, err = svc.GetPersonByID(owner.ID, models.RoleUser, 999)
	assert.True(t, code.Is(err, code.ErrPersonNotFound))
}

func TestGetPersonAsAdmin(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	dto, err := svc.GetPersonAsAdminByID(person.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", dto.FirstName)
	assert.Equal(t, "Doe", dto.LastName)

	_, err = svc.GetPersonAsAdminByID(999)
	assert.True(t, code.Is(err, code.ErrPersonNotFound))
}

func TestListPersonsByUser(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	other := seedUser(t, db, "janedoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	seedPerson(t, db, owner.ID, "")
	seedPerson(t, db, owner.ID, "")
	seedPerson(t, db, other.ID, "")

	own, err := svc.ListPersonsByUser(owner.ID, models.RoleUser, 0)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	// 普通用户指定他人账户时强制回到本人
	forced, err := svc.ListPersonsByUser(owner.ID, models.RoleUser, other.ID)
	require.NoError(t, err)
	assert.Len(t, forced, 2)

	// 管理员可以查询任意账户
	targeted, err := svc.ListPersonsByUser(admin.ID, models.RoleAdmin, other.ID)
	require.NoError(t, err)
	assert.Len(t, targeted, 1)
}

func TestUpdatePersonPartial(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	// 只更新姓氏，其余留空保持原值
	dto, err := svc.UpdatePerson(owner.ID, models.RoleUser, person.ID, PersonUpdateInput{
		LastName: "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "Smith", dto.LastName)
	assert.Equal(t, "John", dto.FirstName)
	assert.Equal(t, "1990-05-01", dto.DateOfBirth)
	assert.Equal(t, "john@example.com", dto.Email)
}

func TestUpdatePersonDenied(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	person := seedPerson(t, db, owner.ID, "")

	_, err := svc.UpdatePerson(stranger.ID, models.RoleUser, person.ID, PersonUpdateInput{LastName: "X"})
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	// 管理员的代办权限不包含更新
	_, err = svc.UpdatePerson(admin.ID, models.RoleAdmin, person.ID, PersonUpdateInput{LastName: "X"})
	assert.True(t, code.Is(err, code.ErrUnauthorized))
}

func TestDeletePersonCascades(t *testing.T) {
	svc, db, pictures := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	picturePath, _ := pictures.Save([]byte("img"))
	person := seedPerson(t, db, owner.ID, picturePath)
	seedResidence(t, db, person.ID)

	require.NoError(t, svc.DeletePerson(owner.ID, models.RoleUser, person.ID))

	var personCount, residenceCount int64
	db.Model(&models.Person{}).Count(&personCount)
	db.Model(&models.Residence{}).Count(&residenceCount)
	assert.Zero(t, personCount)
	assert.Zero(t, residenceCount, "删除档案应级联删除地址")

	_, err := pictures.Load(picturePath)
	assert.True(t, code.Is(err, code.ErrPictureNotFound))
}

func TestDeletePersonByAdmin(t *testing.T) {
	svc, db, _ := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	person := seedPerson(t, db, owner.ID, "")

	require.NoError(t, svc.DeletePerson(admin.ID, models.RoleAdmin, person.ID))
}

func TestDeletePersonAdminProtection(t *testing.T) {
	svc, db, _ := newPersonService(t)
	adminOwner := seedUser(t, db, "admin123", models.RoleAdmin)
	admin := seedUser(t, db, "admin456", models.RoleAdmin)
	person := seedPerson(t, db, adminOwner.ID, "")

	// 属主是管理员，其他管理员不能删除其档案
	err := svc.DeletePerson(admin.ID, models.RoleAdmin, person.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))
}

func TestPictureLifecycle(t *testing.T) {
	svc, db, pictures := newPersonService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	// 初始没有头像
	_, err := svc.GetPicture(owner.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrPictureNotFound))

	require.NoError(t, svc.UpdatePicture(owner.ID, models.RoleUser, person.ID, []byte("first")))
	data, err := svc.GetPicture(owner.ID, models.RoleUser, person.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)

	// 替换头像后旧文件删除
	var before models.Person
	require.NoError(t, db.First(&before, person.ID).Error)
	require.NoError(t, svc.UpdatePicture(owner.ID, models.RoleUser, person.ID, []byte("second")))
	_, err = pictures.Load(before.ProfilePicturePath)
	assert.True(t, code.Is(err, code.ErrPictureNotFound))

	// 他人不能读头像
	_, err = svc.GetPicture(stranger.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	// 删除头像清空路径，文件一并清理，不留孤儿文件
	var current models.Person
	require.NoError(t, db.First(&current, person.ID).Error)
	currentPath := current.ProfilePicturePath
	require.NotEmpty(t, currentPath)

	require.NoError(t, svc.DeletePicture(owner.ID, models.RoleUser, person.ID))
	var after models.Person
	require.NoError(t, db.First(&after, person.ID).Error)
	assert.Empty(t, after.ProfilePicturePath)
	_, err = pictures.Load(currentPath)
	assert.True(t, code.Is(err, code.ErrPictureNotFound), "旧头像文件应已删除")
	_, err = svc.GetPicture(owner.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrPictureNotFound))
}
