package services

import (
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResidenceService(t *testing.T) (InterfaceResidenceService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewResidenceService(db, NewOwnershipResolver(db)), db
}

func strptr(s string) *string {
	return &s
}

func TestCreateResidence(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	dto, err := svc.CreateResidence(owner.ID, models.RoleUser, ResidenceCreateInput{
		PersonID:    person.ID,
		City:        "Riga",
		Street:      "Brivibas",
		HouseNumber: "10",
	})
	require.NoError(t, err)
	assert.Equal(t, person.ID, dto.PersonID)
	assert.Equal(t, "Riga", dto.City)

	// 一人一址，重复登记拒绝
	_, err = svc.CreateResidence(owner.ID, models.RoleUser, ResidenceCreateInput{
		PersonID:    person.ID,
		City:        "Vilnius",
		Street:      "Gedimino",
		HouseNumber: "12",
	})
	assert.True(t, code.Is(err, code.ErrValidation))
}

func TestCreateResidenceDenied(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	input := ResidenceCreateInput{
		PersonID:    person.ID,
		City:        "Riga",
		Street:      "Brivibas",
		HouseNumber: "10",
	}

	_, err := svc.CreateResidence(stranger.ID, models.RoleUser, input)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	input.PersonID = 999
	_, err = svc.CreateResidence(owner.ID, models.RoleUser, input)
	assert.True(t, code.Is(err, code.ErrPersonNotFound))
}

func TestCreateResidenceValidation(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	_, err := svc.CreateResidence(owner.ID, models.RoleUser, ResidenceCreateInput{
		PersonID: person.ID,
		City:     "Riga",
		Street:   " ",
	})
	assert.True(t, code.Is(err, code.ErrValidation))
}

func TestGetResidence(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")
	residence := seedResidence(t, db, person.ID)

	dto, err := svc.GetResidenceByID(owner.ID, models.RoleUser, residence.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brivibas", dto.Street)

	byPerson, err := svc.GetResidenceByPersonID(owner.ID, models.RoleUser, person.ID)
	require.NoError(t, err)
	assert.Equal(t, residence.ID, byPerson.ID)

	// 归属链校验到账户
	_, err = svc.GetResidenceByID(stranger.ID, models.RoleUser, residence.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))
	_, err = svc.GetResidenceByPersonID(stranger.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	_, err = svc.GetResidenceByID(owner.ID, models.RoleUser, 999)
	assert.True(t, code.Is(err, code.ErrResidenceNotFound))
}

func TestGetResidenceByPersonNotRegistered(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")

	_, err := svc.GetResidenceByPersonID(owner.ID, models.RoleUser, person.ID)
	assert.True(t, code.Is(err, code.ErrResidenceNotFound))
}

func TestUpdateResidencePartial(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	person := seedPerson(t, db, owner.ID, "")
	residence := seedResidence(t, db, person.ID)

	// 只更新城市，nil字段保持原值
	dto, err := svc.UpdateResidence(owner.ID, models.RoleUser, residence.ID, ResidenceUpdateInput{
		City: strptr("Vilnius"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Vilnius", dto.City)
	assert.Equal(t, "Brivibas", dto.Street)
	assert.Equal(t, "10", dto.HouseNumber)
}

func TestUpdateResidenceDenied(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	person := seedPerson(t, db, owner.ID, "")
	residence := seedResidence(t, db, person.ID)

	// 管理员的代办权限不包含更新
	_, err := svc.UpdateResidence(admin.ID, models.RoleAdmin, residence.ID, ResidenceUpdateInput{
		City: strptr("Vilnius"),
	})
	assert.True(t, code.Is(err, code.ErrUnauthorized))
}

func TestDeleteResidence(t *testing.T) {
	svc, db := newResidenceService(t)
	owner := seedUser(t, db, "johndoe1", models.RoleUser)
	stranger := seedUser(t, db, "janedoe1", models.RoleUser)
	admin := seedUser(t, db, "admin123", models.RoleAdmin)
	person := seedPerson(t, db, owner.ID, "")
	residence := seedResidence(t, db, person.ID)

	err := svc.DeleteResidence(stranger.ID, models.RoleUser, residence.ID)
	assert.True(t, code.Is(err, code.ErrUnauthorized))

	// 管理员可以代为删除
	require.NoError(t, svc.DeleteResidence(admin.ID, models.RoleAdmin, residence.ID))

	var count int64
	db.Model(&models.Residence{}).Count(&count)
	assert.Zero(t, count)
}
